package soap

import "fmt"

// Version identifies the SOAP envelope version of a request.
type Version int

const (
	// V1 is SOAP 1.1.
	V1 Version = 1

	// V2 is SOAP 1.2.
	V2 Version = 2
)

// Default content types per version.
const (
	// ContentTypeSOAP11 is the default content type for SOAP 1.1 messages.
	ContentTypeSOAP11 = "text/xml"

	// ContentTypeSOAP12 is the default content type for SOAP 1.2 messages.
	ContentTypeSOAP12 = "application/soap+xml; charset=utf-8"

	// ContentTypeFallback is used for unrecognized versions.
	ContentTypeFallback = "application/soap+xml"
)

// ActionPlaceholder is replaced by the escaped action in a SOAP 1.2 content
// type override.
const ActionPlaceholder = "{SOAPACTION}"

// Valid reports whether v is a recognized SOAP version.
func (v Version) Valid() bool {
	return v == V1 || v == V2
}

// String returns the string representation of the version.
func (v Version) String() string {
	switch v {
	case V1:
		return "SOAP 1.1"
	case V2:
		return "SOAP 1.2"
	default:
		return fmt.Sprintf("SOAP(%d)", int(v))
	}
}

// ParseVersion parses "1", "1.1", "2" or "1.2" into a Version.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1", "1.1":
		return V1, nil
	case "2", "1.2":
		return V2, nil
	default:
		return 0, fmt.Errorf("soap: unknown version %q", s)
	}
}
