package gst

import "regexp"

// GSTINLength is the fixed length of a GSTIN
const GSTINLength = 15

// gstinPattern is the positional grammar of a GSTIN:
// 2 digits (state code), 5 uppercase letters, 4 digits, 1 uppercase letter,
// 1 alphanumeric (entity number), literal 'Z', 1 alphanumeric (check character).
//
// Only the format is validated. The check character is matched positionally
// but no checksum arithmetic is performed; identifiers with a wrong check
// digit in an otherwise valid shape are accepted.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// IsValidGSTIN reports whether the identifier matches the GSTIN grammar.
// An invalid GSTIN is an expected data-quality condition, not an error.
func IsValidGSTIN(gstin string) bool {
	return gstinPattern.MatchString(gstin)
}

// GSTINStateCode extracts the state code from a GSTIN.
// Returns the empty StateCode if the GSTIN is not valid.
func GSTINStateCode(gstin string) StateCode {
	if !IsValidGSTIN(gstin) {
		return ""
	}
	return StateCode(gstin[:2])
}
