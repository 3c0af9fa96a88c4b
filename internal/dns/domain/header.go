package domain

// Header is the fixed DNS message header (RFC 1035 §4.1.1).
type Header struct {
	ID      uint16 // transaction ID, echoed in responses
	Flags   Flags
	QDCount uint16 // question count
	ANCount uint16 // answer count
	NSCount uint16 // authority count
	ARCount uint16 // additional count
}

// IsResponse reports whether the QR bit is set.
func (h Header) IsResponse() bool {
	return h.Flags.QR
}
