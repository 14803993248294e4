package vpagateway

import "golang.org/x/text/unicode/norm"

// normalizeInput puts request body text destined for the regex matcher into
// NFC: a grammar's character-class literals are composed forms, and
// decomposed input that is visually identical would otherwise fail to match.
func normalizeInput(s string) string {
	return norm.NFC.String(s)
}
