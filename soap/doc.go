// Package soap holds the pure, I/O-free pieces of the SOAP transport: protocol
// versions, HTTP header construction for SOAP 1.1 and SOAP 1.2 requests, and
// sanitization of multipart (XOP) responses.
//
// # Subpackages
//
//   - auth: Authentication handlers (Basic, NTLM)
//   - transport: HTTP/TLS transport with retry and timeouts
//
// # Headers
//
// SOAP 1.1 carries the operation in a SOAPAction header:
//
//	Content-Type: text/xml
//	SOAPAction: "urn:DoWork"
//
// SOAP 1.2 carries it as a parameter of the content type:
//
//	Content-Type: application/soap+xml; charset=utf-8; action="urn:DoWork"
package soap
