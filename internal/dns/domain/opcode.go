package domain

import "fmt"

// Opcode identifies the kind of query carried in a message.
// Only the low four bits travel in the header flags word.
type Opcode uint8

const (
	OpcodeQuery  Opcode = 0 // QUERY - standard query
	OpcodeIQuery Opcode = 1 // IQUERY - inverse query, obsoleted by RFC 3425
	OpcodeStatus Opcode = 2 // STATUS - server status request
	OpcodeNotify Opcode = 4 // NOTIFY - zone change notification (RFC 1996)
	OpcodeUpdate Opcode = 5 // UPDATE - dynamic update (RFC 2136)
)

// String returns the textual representation of the Opcode.
func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	case OpcodeNotify:
		return "NOTIFY"
	case OpcodeUpdate:
		return "UPDATE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", o)
	}
}
