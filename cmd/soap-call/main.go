// Command soap-call sends a single SOAP request and prints the response.
//
// Password can be provided via:
//   - --password flag (least secure, visible in process list)
//   - SOAP_PASSWORD environment variable (recommended)
//   - stdin prompt (if --login is set and neither of the above is)
//
// Usage:
//
//	soap-call --location <url> --action <action> --request <file>
//
// Examples:
//
//	# SOAP 1.1 call with basic auth
//	export SOAP_PASSWORD='secret'
//	soap-call --location https://host/svc --action urn:Ping --login admin --request ping.xml
//
//	# SOAP 1.2, three attempts, extra header, request on stdin
//	soap-call --location https://host/svc --soap-version 1.2 --attempts 3 \
//	    --header X-Tenant=acme --action urn:Ping < ping.xml
//
//	# Settings from a YAML file
//	soap-call --config client.yaml --action urn:Ping --request ping.xml
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smnsjas/go-soaptransport/client"
	"github.com/smnsjas/go-soaptransport/internal/log"
	"github.com/smnsjas/go-soaptransport/soap"
)

type callFlags struct {
	configPath  string
	location    string
	action      string
	version     string
	requestPath string
	oneWay      bool

	connectTimeout int
	readTimeout    int
	attempts       int

	login    string
	password string
	domain   string
	ntlm     bool

	headers     []string
	contentType string
	insecure    bool
	proxy       string

	logLevel string
	logFile  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f callFlags

	cmd := &cobra.Command{
		Use:   "soap-call",
		Short: "Send a SOAP request over HTTP",
		Long: `Send a single SOAP envelope to an endpoint and print the response body.

The request is read from --request, or from stdin when --request is omitted.
Flags override values loaded with --config.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML client configuration file")
	fl.StringVar(&f.location, "location", "", "Endpoint URL")
	fl.StringVar(&f.action, "action", "", "SOAP action")
	fl.StringVar(&f.version, "soap-version", "1.1", "SOAP version: 1.1 or 1.2")
	fl.StringVarP(&f.requestPath, "request", "r", "", "File holding the request envelope (default stdin)")
	fl.BoolVar(&f.oneWay, "one-way", false, "Do not wait for a response body")
	fl.IntVar(&f.connectTimeout, "connect-timeout", 0, "Connect timeout in seconds (0 = none)")
	fl.IntVar(&f.readTimeout, "read-timeout", -1, "Read timeout in seconds (0 = none, default from "+client.DefaultSocketTimeoutEnv+")")
	fl.IntVar(&f.attempts, "attempts", 0, "Total attempts per call (default 1)")
	fl.StringVar(&f.login, "login", "", "Login for authentication")
	fl.StringVar(&f.password, "password", "", "Password (prefer SOAP_PASSWORD)")
	fl.StringVar(&f.domain, "domain", "", "NTLM domain")
	fl.BoolVar(&f.ntlm, "ntlm", false, "Use NTLM instead of Basic authentication")
	fl.StringArrayVarP(&f.headers, "header", "H", nil, "Custom header as Name=Value (repeatable)")
	fl.StringVar(&f.contentType, "content-type", "", "Override the Content-Type ({SOAPACTION} is replaced for SOAP 1.2)")
	fl.BoolVar(&f.insecure, "insecure", false, "Skip TLS certificate verification")
	fl.StringVar(&f.proxy, "proxy", "", `Proxy URL, or "direct" to bypass the environment proxy`)
	fl.StringVar(&f.logLevel, "loglevel", "", "Log level: debug, info, warn, error (empty = no logging)")
	fl.StringVar(&f.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")

	return cmd
}

func run(cmd *cobra.Command, f *callFlags) error {
	version, err := soap.ParseVersion(f.version)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cmd.ErrOrStderr(), f.logLevel, f.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := &client.FileConfig{}
	if f.configPath != "" {
		if cfg, err = client.LoadConfig(f.configPath); err != nil {
			return err
		}
	}
	if err := applyFlags(cmd, f, cfg); err != nil {
		return err
	}
	if cfg.Location == "" {
		return fmt.Errorf("--location is required")
	}
	cfg.Logger = logger
	logger.Debug("client configuration", "location", cfg.Location, "options", cfg.Options)

	c, err := client.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	request, err := readRequest(cmd.InOrStdin(), f.requestPath)
	if err != nil {
		return err
	}

	resp, err := c.Call(cmd.Context(), request, "", f.action, version, f.oneWay)
	if err != nil {
		if code, ok := c.LastConnErrNo(); ok {
			return fmt.Errorf("%w (code %d: %s)", err, code, c.LastConnErrText())
		}
		return err
	}

	if resp != "" {
		fmt.Fprintln(cmd.OutOrStdout(), resp)
	}
	return nil
}

// applyFlags overlays explicitly set flags onto cfg.
func applyFlags(cmd *cobra.Command, f *callFlags, cfg *client.FileConfig) error {
	changed := cmd.Flags().Changed

	if changed("location") {
		cfg.Location = f.location
	}
	if changed("connect-timeout") {
		cfg.NegotiationTimeout = f.connectTimeout
	}
	if changed("read-timeout") {
		rt := f.readTimeout
		cfg.PersistanceTimeout = &rt
	}
	if changed("attempts") {
		cfg.PersistanceFactor = f.attempts
	}
	if changed("domain") {
		cfg.Domain = f.domain
	}
	if f.ntlm {
		cfg.AuthScheme = client.AuthNTLM
	}
	if changed("content-type") {
		cfg.ContentType = f.contentType
	}
	if f.insecure {
		cfg.IgnoreCertVerify = true
	}
	if changed("proxy") {
		cfg.Proxy = f.proxy
	}

	for _, h := range f.headers {
		name, value, ok := strings.Cut(h, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid header %q: expected Name=Value", h)
		}
		cfg.Headers = append(cfg.Headers, client.Header{Name: name, Value: value})
	}

	if changed("login") {
		cfg.Login = f.login
		cfg.Password = nil
	}
	if cfg.Login != "" && cfg.Password == nil {
		if pass, ok := getPassword(cmd.InOrStdin(), f.password, f.requestPath == ""); ok {
			cfg.Password = &pass
		}
	}
	return nil
}

// getPassword returns password from flag, env var, or prompts for it.
// The prompt is skipped when stdin carries the request.
func getPassword(stdin io.Reader, flagValue string, stdinBusy bool) (string, bool) {
	// 1. Check flag
	if flagValue != "" {
		return flagValue, true
	}

	// 2. Check environment variable
	if envPass := os.Getenv("SOAP_PASSWORD"); envPass != "" {
		return envPass, true
	}

	if stdinBusy {
		return "", false
	}

	// 3. Prompt for password (hide input if terminal)
	fmt.Fprint(os.Stderr, "Password: ")

	if file, ok := stdin.(*os.File); ok {
		fd := int(file.Fd())
		if term.IsTerminal(fd) {
			passBytes, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return "", false
			}
			return string(passBytes), true
		}
	}

	// Not a terminal (piped input): read line
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func readRequest(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read request: %w", err)
	}
	return string(data), nil
}

// setupLogger builds the logger for the --loglevel and --log-file flags.
// Without a level, logging is discarded.
func setupLogger(stderr io.Writer, level, path string) (*slog.Logger, func(), error) {
	if level == "" {
		return log.Discard(), func() {}, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return log.New(stderr, lvl), func() {}, nil
	}

	rf, err := log.NewRotatingFile(path, log.DefaultMaxSize, 3)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(rf, lvl), func() { _ = rf.Close() }, nil
}
