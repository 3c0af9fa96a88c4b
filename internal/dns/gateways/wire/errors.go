package wire

import "errors"

// Decode and encode failures. Callers match them with errors.Is; the
// returned errors wrap these with positional context.
var (
	// ErrMalformedHeader is returned when fewer than HeaderSize bytes are available.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrTruncatedName is returned when a name runs past the end of the message.
	ErrTruncatedName = errors.New("truncated name")

	// ErrInvalidLabelLength is returned for a length byte with either of its top
	// two bits set. That covers compression pointers, which are not supported.
	ErrInvalidLabelLength = errors.New("invalid label length")

	// ErrLabelTooLong is returned when encoding a label longer than MaxLabelLength.
	ErrLabelTooLong = errors.New("label too long")

	// ErrEmptyLabel is returned when encoding a name with a zero-length label
	// anywhere but the implicit root terminator.
	ErrEmptyLabel = errors.New("empty label")

	// ErrNameTooLong is returned when a name exceeds MaxNameLength wire bytes.
	ErrNameTooLong = errors.New("name too long")

	// ErrTruncatedQuestion is returned when TYPE or CLASS runs past the end of the message.
	ErrTruncatedQuestion = errors.New("truncated question")

	// ErrMessageTooLarge is returned when an encoded message exceeds MaxUDPMessageSize.
	ErrMessageTooLarge = errors.New("message too large")
)
