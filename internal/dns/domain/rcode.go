package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
// Only the low four bits travel in the header flags word.
type RCode uint8

// Response codes defined by RFC 1035 and RFC 2136.
const (
	RCodeNoError  RCode = 0  // NOERROR - no error condition
	RCodeFormErr  RCode = 1  // FORMERR - the server could not interpret the query
	RCodeServFail RCode = 2  // SERVFAIL - server failure
	RCodeNXDomain RCode = 3  // NXDOMAIN - name does not exist
	RCodeNotImp   RCode = 4  // NOTIMP - the server does not support the requested kind of query
	RCodeRefused  RCode = 5  // REFUSED - refused for policy reasons
	RCodeYXDomain RCode = 6  // YXDOMAIN - name exists when it should not
	RCodeYXRRSet  RCode = 7  // YXRRSET - RR set exists when it should not
	RCodeNXRRSet  RCode = 8  // NXRRSET - RR set that should exist does not
	RCodeNotAuth  RCode = 9  // NOTAUTH - server not authoritative for zone
	RCodeNotZone  RCode = 10 // NOTZONE - name not contained in zone
)

// IsValid returns true if the RCode fits in the four bits available in the header.
func (r RCode) IsValid() bool {
	return r <= 15
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	case RCodeYXDomain:
		return "YXDOMAIN"
	case RCodeYXRRSet:
		return "YXRRSET"
	case RCodeNXRRSet:
		return "NXRRSET"
	case RCodeNotAuth:
		return "NOTAUTH"
	case RCodeNotZone:
		return "NOTZONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", r)
	}
}
