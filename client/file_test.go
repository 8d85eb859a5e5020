package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
location: https://soap.example.com/service
login: svc-user
password: s3cret
domain: CORP
auth_scheme: ntlm
negotiation_timeout: 5
persistance_factor: 3
persistance_timeout: 0
content_type: 'application/soap+xml; action="{SOAPACTION}"'
headers:
  - name: X-Tenant
    value: acme
  - name: X-Trace
    value: "1"
ignore_cert_verify: true
proxy: direct
`)

	cfg, err := ParseConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "https://soap.example.com/service", cfg.Location)
	assert.Equal(t, "svc-user", cfg.Login)
	require.NotNil(t, cfg.Password)
	assert.Equal(t, "s3cret", *cfg.Password)
	assert.Equal(t, "CORP", cfg.Domain)
	assert.Equal(t, AuthNTLM, cfg.AuthScheme)
	assert.Equal(t, 5, cfg.NegotiationTimeout)
	assert.Equal(t, 3, cfg.PersistanceFactor)
	require.NotNil(t, cfg.PersistanceTimeout, "explicit zero must be kept")
	assert.Equal(t, 0, *cfg.PersistanceTimeout)
	assert.Equal(t, `application/soap+xml; action="{SOAPACTION}"`, cfg.ContentType)
	assert.Equal(t, []Header{{Name: "X-Tenant", Value: "acme"}, {Name: "X-Trace", Value: "1"}}, cfg.Headers)
	assert.True(t, cfg.IgnoreCertVerify)
	assert.Equal(t, "direct", cfg.Proxy)

	c, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, AuthNTLM, c.AuthScheme())
	assert.Equal(t, 0, c.PersistanceTimeout())
	assert.Equal(t, []string{"X-Tenant: acme", "X-Trace: 1"}, c.Headers().Lines())
}

func TestParseConfig_Minimal(t *testing.T) {
	t.Setenv(DefaultSocketTimeoutEnv, "20")

	cfg, err := ParseConfig([]byte("location: http://localhost/svc\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Password)
	assert.Nil(t, cfg.PersistanceTimeout)
	assert.Equal(t, AuthBasic, cfg.AuthScheme)

	c, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, c.PersistanceFactor())
	assert.Equal(t, 20, c.PersistanceTimeout())
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "location: [unterminated"},
		{"bad auth scheme", "auth_scheme: digest"},
		{"bad factor type", "persistance_factor: many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestNewFromConfig_Validation(t *testing.T) {
	_, err := NewFromConfig(nil)
	assert.ErrorIs(t, err, ErrConfig)

	cfg, err := ParseConfig([]byte("location: http://x\npersistance_factor: -1\n"))
	require.NoError(t, err)
	_, err = NewFromConfig(cfg)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("location: http://localhost/svc\nlogin: bob\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.Login)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
