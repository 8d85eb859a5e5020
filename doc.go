// Package soaptransport provides the HTTP transport layer of a SOAP client.
//
// It sends serialized SOAP 1.1 and 1.2 envelopes over HTTP/HTTPS with
// bounded retry, per-attempt timeouts, Basic or NTLM authentication and
// curl-compatible connection error codes.
//
// # Architecture
//
// The library is organized into layers:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  client/          Configuration facade + Call           │
//	├─────────────────────────────────────────────────────────┤
//	│  soap/transport/  Retry executor, error codes           │
//	├─────────────────────────────────────────────────────────┤
//	│  soap/auth/       Basic and NTLM authenticators         │
//	├─────────────────────────────────────────────────────────┤
//	│  soap/            Header builder, response sanitizer    │
//	└─────────────────────────────────────────────────────────┘
//
// # Quick Start
//
//	pass := "password"
//	c, err := client.New("https://server/service", client.Options{
//	    Login:             "administrator",
//	    Password:          &pass,
//	    PersistanceFactor: 3,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Call(ctx, envelope, "", "urn:GetStatus", soap.V1, false)
//	if err != nil {
//	    code, _ := c.LastConnErrNo()
//	    log.Fatalf("call failed (%d %s): %v", code, c.LastConnErrText(), err)
//	}
//
// # Error Codes
//
// Every attempt records a numeric connection error code following curl's
// numbering (0 success, 7 connect failure, 28 timeout, 60 certificate
// verification failure, ...). The code of the most recent attempt is
// available from Client.LastConnErrNo after each call.
package soaptransport
