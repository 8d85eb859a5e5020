// Package transport provides the HTTP/TLS transport for SOAP calls.
//
// The transport layer handles:
//   - HTTP/HTTPS connections, one fresh connection per attempt
//   - Connect and read timeouts
//   - Bounded retry without backoff
//   - TLS configuration and opt-out certificate verification
//   - Version-specific SOAP headers and XOP response sanitization
//
// Failures are reported as numeric ErrorCode values that follow the libcurl
// numbering (7 = couldn't connect, 28 = timeout, ...). Only exhaustion of all
// attempts surfaces as an error:
//
//	tr := transport.NewHTTPTransport(
//	    transport.WithAttempts(3),
//	    transport.WithConnectTimeout(5*time.Second),
//	)
//	resp, err := tr.Execute(ctx, transport.Request{
//	    Body:     envelope,
//	    Location: "https://example.com/service",
//	    Action:   "urn:DoWork",
//	    Version:  soap.V2,
//	})
package transport
