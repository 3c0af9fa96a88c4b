package domain

// Bit positions of the header flags word, most significant bit first:
//
//	QR(1) | OPCODE(4) | AA(1) | TC(1) | RD(1) | RA(1) | Z(3) | RCODE(4)
const (
	flagQR      = 1 << 15
	opcodeShift = 11
	opcodeMask  = 0x0F
	flagAA      = 1 << 10
	flagTC      = 1 << 9
	flagRD      = 1 << 8
	flagRA      = 1 << 7
	zShift      = 4
	zMask       = 0x07
	rcodeMask   = 0x0F
)

// Flags is the structured form of the 16-bit header flags word.
type Flags struct {
	QR     bool   // set on responses
	Opcode Opcode // kind of query, echoed in responses
	AA     bool   // authoritative answer
	TC     bool   // message truncated
	RD     bool   // recursion desired
	RA     bool   // recursion available
	Z      uint8  // reserved, three bits
	RCode  RCode  // response code
}

// Pack returns the wire value of the flags. Opcode, Z and RCode are
// masked to their field width.
func (f Flags) Pack() uint16 {
	var v uint16
	if f.QR {
		v |= flagQR
	}
	v |= (uint16(f.Opcode) & opcodeMask) << opcodeShift
	if f.AA {
		v |= flagAA
	}
	if f.TC {
		v |= flagTC
	}
	if f.RD {
		v |= flagRD
	}
	if f.RA {
		v |= flagRA
	}
	v |= (uint16(f.Z) & zMask) << zShift
	v |= uint16(f.RCode) & rcodeMask
	return v
}

// UnpackFlags splits a wire flags word into its sub-fields.
func UnpackFlags(v uint16) Flags {
	return Flags{
		QR: v&flagQR != 0,
		//gosec:disable G115 -- masked to four bits
		Opcode: Opcode((v >> opcodeShift) & opcodeMask),
		AA:     v&flagAA != 0,
		TC:     v&flagTC != 0,
		RD:     v&flagRD != 0,
		RA:     v&flagRA != 0,
		//gosec:disable G115 -- masked to three bits
		Z: uint8((v >> zShift) & zMask),
		//gosec:disable G115 -- masked to four bits
		RCode: RCode(v & rcodeMask),
	}
}
