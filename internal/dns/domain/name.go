package domain

import "strings"

// Name is a domain name as an ordered sequence of labels, most specific
// first. The root name has no labels.
type Name []string

// ParseName splits a dotted presentation name into labels. A single
// trailing dot is accepted; "" and "." both yield the root name.
func ParseName(s string) Name {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return nil
	}
	return Name(strings.Split(s, "."))
}

// String renders the name in dotted form with a trailing dot.
func (n Name) String() string {
	if len(n) == 0 {
		return "."
	}
	return strings.Join(n, ".") + "."
}

// IsRoot reports whether the name has no labels.
func (n Name) IsRoot() bool {
	return len(n) == 0
}

// WireLength returns the number of bytes the uncompressed name occupies
// on the wire: one length byte per label, its content, and the terminator.
func (n Name) WireLength() int {
	size := 1
	for _, label := range n {
		size += 1 + len(label)
	}
	return size
}
