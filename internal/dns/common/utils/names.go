// Package utils holds small name helpers used to build log fields.
package utils

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// CanonicalDNSName returns a DNS name lowercased, trimmed of surrounding
// whitespace and without trailing dots.
func CanonicalDNSName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimRight(name, ".")
}

// GetApexDomain returns the registrable domain (eTLD+1) of name, e.g.
// "example.co.uk" for "www.example.co.uk". Names the public suffix list
// cannot place are returned in canonical form, and the root name is ".".
func GetApexDomain(name string) string {
	name = CanonicalDNSName(name)
	if name == "" {
		return "."
	}
	apex, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return name
	}
	return apex
}
