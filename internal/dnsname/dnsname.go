// Package dnsname holds the DNS name comparison rules shared by the
// CloudFront and Route 53 sides of the tool. Route 53 stores names
// lowercased with a trailing dot; CloudFront alias lists usually omit
// the dot. Comparing anything without normalizing first is a bug.
package dnsname

import "strings"

// Normalize lowercases a DNS name and appends the root dot if missing.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return name
	}
	if !strings.HasSuffix(name, ".") {
		name += "."
	}
	return name
}

// Equal reports whether two DNS names refer to the same name after
// normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Valid reports whether name is a syntactically valid DNS name:
// dot-separated labels of 1-63 letters, digits and inner hyphens,
// at most 253 characters total. A single trailing dot is allowed.
func Valid(name string) bool {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".")
	if name == "" || len(name) > 253 {
		return false
	}
	for _, label := range strings.Split(name, ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			case c == '-':
				if i == 0 || i == len(label)-1 {
					return false
				}
			default:
				return false
			}
		}
	}
	return true
}
