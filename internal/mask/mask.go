// Package mask implements the field-masking policy: which vault fields are
// considered sensitive and how their values are reduced to safe previews.
package mask

import (
	"sort"
	"strings"
)

// sensitiveSubstrings marks a field as sensitive when any of them appears in
// the lower-cased field name.
var sensitiveSubstrings = []string{
	"password", "card", "cvv", "ssn", "social", "passport", "license",
}

// Sensitive reports whether the named field must be masked in previews.
func Sensitive(fieldName string) bool {
	name := strings.ToLower(fieldName)
	for _, sub := range sensitiveSubstrings {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

// Mask reduces a value to its masked preview form: values of four runes or
// fewer become all asterisks, longer values keep the first and last rune.
// Masking is length-preserving.
func Mask(value string) string {
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}

// PreviewString renders the mapping as "key: value; key: value" with
// sensitive values masked. Keys are emitted in sorted order so the preview
// is deterministic. Empty input yields an empty string.
func PreviewString(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if Sensitive(k) {
			v = Mask(v)
		}
		parts = append(parts, k+": "+v)
	}

	return strings.Join(parts, "; ")
}

// PreviewMap returns a field-keyed mapping with sensitive values masked and
// non-sensitive values passed through unchanged. Empty input yields an
// empty map.
func PreviewMap(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if Sensitive(k) {
			v = Mask(v)
		}
		out[k] = v
	}
	return out
}
