// Package client provides the SOAP client facade: it holds the transport
// configuration, validates every change to it, and hands each outbound call to
// the HTTP transport.
//
// The envelope layer (serialization, WSDL handling) lives outside this module
// and talks to the facade with an already-serialized request:
//
//	pw := "secret"
//	c, err := client.New("https://example.com/service?wsdl", client.Options{
//	    Login:              "svc-user",
//	    Password:           &pw,
//	    NegotiationTimeout: 5,
//	    PersistanceFactor:  3,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Call(ctx, envelope, "https://example.com/service", "urn:DoWork", soap.V2, false)
//	if errors.Is(err, transport.ErrMaxAttempts) {
//	    code, _ := c.LastConnErrNo()
//	    log.Printf("gave up: %d %s", code, c.LastConnErrText())
//	}
//
// # Concurrency
//
// A Client is not safe for concurrent use. The last connection error is
// shared state written by every call; callers that share a Client between
// goroutines must synchronize externally.
package client
