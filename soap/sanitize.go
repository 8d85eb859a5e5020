package soap

// Markers used to detect and unwrap XOP (MTOM) multipart responses.
const (
	// XOPMarker signals that the envelope is embedded in a multipart body.
	XOPMarker = "Content-Type: application/xop+xml"

	envelopeStart = "<s:"
	envelopeEnd   = "</s:Envelope>"
)

// SanitizeResponse extracts the SOAP envelope from an XOP multipart response.
//
// Bodies without XOPMarker are returned unchanged. Otherwise the result is the
// text from the first "<s:" up to, not including, the first "</s:Envelope>"
// after it, with "</s:Envelope>" appended. All searches are ASCII
// case-insensitive.
//
// A missing anchor yields an empty segment, so the result is just the closing
// tag. This mirrors plain substring-search semantics and never fails.
func SanitizeResponse(body string) string {
	if indexFold(body, XOPMarker) < 0 {
		return body
	}

	start := indexFold(body, envelopeStart)
	if start < 0 {
		return envelopeEnd
	}
	tail := body[start:]

	end := indexFold(tail, envelopeEnd)
	if end < 0 {
		return envelopeEnd
	}
	return tail[:end] + envelopeEnd
}

// indexFold returns the index of the first ASCII case-insensitive occurrence
// of substr in s, or -1. Offsets are byte offsets into s.
func indexFold(s, substr string) int {
	n := len(substr)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(s); i++ {
		if equalFoldASCII(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
