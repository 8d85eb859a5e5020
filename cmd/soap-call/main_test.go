package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSoapCall_RequestFromStdin(t *testing.T) {
	var gotBody, gotAction, gotTenant string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotAction = r.Header.Get("SOAPAction")
		gotTenant = r.Header.Get("X-Tenant")
		_, _ = w.Write([]byte("<s:Envelope>pong</s:Envelope>"))
	}))
	defer server.Close()

	out, _, err := execute(t, "<s:Envelope>ping</s:Envelope>",
		"--location", server.URL,
		"--action", "urn:Ping",
		"--header", "X-Tenant=acme",
	)
	require.NoError(t, err)

	assert.Equal(t, "<s:Envelope>pong</s:Envelope>\n", out)
	assert.Equal(t, "<s:Envelope>ping</s:Envelope>", gotBody)
	assert.Equal(t, `"urn:Ping"`, gotAction)
	assert.Equal(t, "acme", gotTenant)
}

func TestSoapCall_ConfigFileAndSoap12(t *testing.T) {
	var gotCT string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte("<ok/>"))
	}))
	defer server.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("location: "+server.URL+"\npersistance_factor: 2\n"), 0o600))
	reqPath := filepath.Join(dir, "req.xml")
	require.NoError(t, os.WriteFile(reqPath, []byte("<req/>"), 0o600))

	out, _, err := execute(t, "",
		"--config", cfgPath,
		"--request", reqPath,
		"--soap-version", "1.2",
		"--action", "urn:Get",
	)
	require.NoError(t, err)
	assert.Equal(t, "<ok/>\n", out)
	assert.Equal(t, `application/soap+xml; charset=utf-8; action="urn:Get"`, gotCT)
}

func TestSoapCall_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing location", []string{"--action", "A"}, "--location is required"},
		{"bad version", []string{"--location", "http://x", "--soap-version", "3"}, "unknown version"},
		{"bad header", []string{"--location", "http://x", "--header", "NoEquals"}, "invalid header"},
		{"bad log level", []string{"--location", "http://x", "--loglevel", "loud"}, "invalid log level"},
		{"bad attempts", []string{"--location", "http://x", "--attempts", "-1"}, "persistance factor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "<req/>", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSoapCall_TransportFailureReportsCode(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, _, err := execute(t, "<req/>", "--location", url, "--attempts", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Request failed for the maximum number of attempts.")
	assert.Contains(t, err.Error(), "code 7: Couldn't connect to server")
}

func TestGetPassword(t *testing.T) {
	t.Setenv("SOAP_PASSWORD", "")

	p, ok := getPassword(strings.NewReader(""), "flagpass", true)
	assert.True(t, ok)
	assert.Equal(t, "flagpass", p)

	_, ok = getPassword(strings.NewReader("ignored\n"), "", true)
	assert.False(t, ok, "stdin carrying the request must not be read")

	p, ok = getPassword(strings.NewReader("piped\n"), "", false)
	assert.True(t, ok)
	assert.Equal(t, "piped", p)

	t.Setenv("SOAP_PASSWORD", "envpass")
	p, ok = getPassword(strings.NewReader(""), "", true)
	assert.True(t, ok)
	assert.Equal(t, "envpass", p)
}
