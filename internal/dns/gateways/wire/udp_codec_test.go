package wire

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/dns/dnsmessage"

	"github.com/haukened/mini-dns/internal/dns/common/log"
	"github.com/haukened/mini-dns/internal/dns/domain"
)

// buildQuery packs a query with x/net's builder so the codec is checked
// against an independent implementation.
func buildQuery(t *testing.T, hdr dnsmessage.Header, questions ...dnsmessage.Question) []byte {
	t.Helper()
	b := dnsmessage.NewBuilder(nil, hdr)
	require.NoError(t, b.StartQuestions())
	for _, q := range questions {
		require.NoError(t, b.Question(q))
	}
	msg, err := b.Finish()
	require.NoError(t, err)
	return msg
}

func TestUdpCodec_DecodeQuery(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	data := buildQuery(t,
		dnsmessage.Header{ID: 0xABCD, RecursionDesired: true},
		dnsmessage.Question{
			Name:  dnsmessage.MustNewName("example.com."),
			Type:  dnsmessage.TypeA,
			Class: dnsmessage.ClassINET,
		},
	)

	msg, err := codec.DecodeQuery(data)
	require.NoError(t, err)

	assert.Equal(t, uint16(0xABCD), msg.Header.ID)
	assert.Equal(t, domain.Flags{RD: true}, msg.Header.Flags)
	assert.Equal(t, uint16(1), msg.Header.QDCount)
	require.Len(t, msg.Questions, 1)
	assert.Equal(t, domain.NewQuestion("example.com.", domain.RRTypeA, domain.RRClassIN), msg.Questions[0])
}

func TestUdpCodec_DecodeQuery_MultipleQuestions(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	data := buildQuery(t,
		dnsmessage.Header{ID: 7},
		dnsmessage.Question{Name: dnsmessage.MustNewName("a.example."), Type: dnsmessage.TypeA, Class: dnsmessage.ClassINET},
		dnsmessage.Question{Name: dnsmessage.MustNewName("b.example."), Type: dnsmessage.TypeAAAA, Class: dnsmessage.ClassINET},
	)

	msg, err := codec.DecodeQuery(data)
	require.NoError(t, err)
	require.Len(t, msg.Questions, 2)
	assert.Equal(t, domain.Name{"a", "example"}, msg.Questions[0].Name)
	assert.Equal(t, domain.RRTypeAAAA, msg.Questions[1].Type)
}

func TestUdpCodec_DecodeQuery_HeaderOnly(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	// A bare header with RD set and no questions.
	data := []byte{0xab, 0xcd, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	msg, err := codec.DecodeQuery(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), msg.Header.ID)
	assert.Empty(t, msg.Questions)
}

func TestUdpCodec_DecodeQuery_IgnoresTrailingSections(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	data := buildQuery(t,
		dnsmessage.Header{ID: 99},
		dnsmessage.Question{Name: dnsmessage.MustNewName("example.com."), Type: dnsmessage.TypeA, Class: dnsmessage.ClassINET},
	)
	// Claim an additional record and append garbage where it would live.
	binary.BigEndian.PutUint16(data[10:12], 1)
	data = append(data, 0xc0, 0xff, 0xff)

	msg, err := codec.DecodeQuery(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), msg.Header.ARCount)
	assert.Len(t, msg.Questions, 1)
}

func TestUdpCodec_DecodeQuery_Errors(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	tests := []struct {
		name       string
		data       []byte
		wantErr    error
		wantHeader domain.Header
	}{
		{
			name:       "empty datagram",
			data:       nil,
			wantErr:    ErrMalformedHeader,
			wantHeader: domain.Header{},
		},
		{
			name:       "short datagram keeps the ID",
			data:       []byte{0x12, 0x34, 0x10, 0x00, 0x00},
			wantErr:    ErrMalformedHeader,
			wantHeader: domain.Header{ID: 0x1234, Flags: domain.Flags{Opcode: domain.OpcodeStatus}},
		},
		{
			name: "question count larger than payload",
			data: []byte{
				0xab, 0xcd, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x01, 'a', 0x00, 0x00, 0x01, 0x00, 0x01,
			},
			wantErr:    ErrTruncatedName,
			wantHeader: domain.Header{ID: 0xABCD, QDCount: 2},
		},
		{
			name: "compressed question name",
			data: []byte{
				0x00, 0x01, 0x20, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0xc0, 0x0c, 0x00, 0x01, 0x00, 0x01,
			},
			wantErr:    ErrInvalidLabelLength,
			wantHeader: domain.Header{ID: 1, Flags: domain.Flags{Opcode: 4}, QDCount: 1},
		},
		{
			name: "question without class",
			data: []byte{
				0x00, 0x02, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x01,
			},
			wantErr:    ErrTruncatedQuestion,
			wantHeader: domain.Header{ID: 2, QDCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := codec.DecodeQuery(tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantHeader, msg.Header)
			assert.Empty(t, msg.Questions)
		})
	}
}

func TestUdpCodec_EncodeResponse(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	resp := domain.Message{
		Header: domain.Header{
			ID:    0xABCD,
			Flags: domain.Flags{QR: true},
		},
		Questions: []domain.Question{
			domain.NewQuestion("codecrafters.io", domain.RRTypeA, domain.RRClassIN),
		},
	}

	data, err := codec.EncodeResponse(resp)
	require.NoError(t, err)

	want := []byte{0xab, 0xcd, 0x80, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0c}
	want = append(want, "codecrafters"...)
	want = append(want, 0x02, 'i', 'o', 0x00, 0x00, 0x01, 0x00, 0x01)
	assert.Equal(t, want, data)
}

func TestUdpCodec_EncodeResponse_ParsesWithDNSMessage(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	resp := domain.Message{
		Header: domain.Header{
			ID:    0x1234,
			Flags: domain.Flags{QR: true, Opcode: domain.OpcodeStatus, RCode: domain.RCodeNotImp},
		},
		Questions: []domain.Question{
			domain.NewQuestion("example.com", domain.RRTypeMX, domain.RRClassIN),
		},
	}

	data, err := codec.EncodeResponse(resp)
	require.NoError(t, err)

	var p dnsmessage.Parser
	hdr, err := p.Start(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), hdr.ID)
	assert.True(t, hdr.Response)
	assert.Equal(t, dnsmessage.OpCode(2), hdr.OpCode)
	assert.Equal(t, dnsmessage.RCodeNotImplemented, hdr.RCode)
	assert.False(t, hdr.Authoritative)
	assert.False(t, hdr.RecursionDesired)
	assert.False(t, hdr.RecursionAvailable)

	q, err := p.Question()
	require.NoError(t, err)
	assert.Equal(t, "example.com.", q.Name.String())
	assert.Equal(t, dnsmessage.TypeMX, q.Type)
	assert.Equal(t, dnsmessage.ClassINET, q.Class)

	_, err = p.Question()
	assert.ErrorIs(t, err, dnsmessage.ErrSectionDone)
}

func TestUdpCodec_EncodeResponse_QDCountFollowsQuestions(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	data, err := codec.EncodeResponse(domain.Message{
		Header: domain.Header{ID: 1, QDCount: 5, ANCount: 0},
	})
	require.NoError(t, err)
	require.Len(t, data, HeaderSize)
	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(data[4:6]))
}

func TestUdpCodec_EncodeResponse_Errors(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	t.Run("invalid question name", func(t *testing.T) {
		_, err := codec.EncodeResponse(domain.Message{
			Questions: []domain.Question{{Name: domain.Name{strings.Repeat("a", 64)}}},
		})
		assert.ErrorIs(t, err, ErrLabelTooLong)
	})

	t.Run("message too large", func(t *testing.T) {
		long := domain.Name{strings.Repeat("a", 63), strings.Repeat("b", 63), strings.Repeat("c", 63)}
		questions := make([]domain.Question, 3)
		for i := range questions {
			questions[i] = domain.Question{Name: long, Type: domain.RRTypeA, Class: domain.RRClassIN}
		}
		_, err := codec.EncodeResponse(domain.Message{Questions: questions})
		assert.ErrorIs(t, err, ErrMessageTooLarge)
	})
}

func TestUdpCodec_RoundTrip(t *testing.T) {
	codec := NewUDPCodec(log.NewNoopLogger())

	want := domain.Message{
		Header: domain.Header{
			ID:      0xBEEF,
			Flags:   domain.Flags{QR: true, AA: true},
			QDCount: 2,
		},
		Questions: []domain.Question{
			domain.NewQuestion("example.com", domain.RRTypeA, domain.RRClassIN),
			domain.NewQuestion("example.org", domain.RRTypeTXT, domain.RRClassCH),
		},
	}

	data, err := codec.EncodeResponse(want)
	require.NoError(t, err)

	got, err := codec.DecodeQuery(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewUDPCodec(t *testing.T) {
	logger := log.NewNoopLogger()
	codec := NewUDPCodec(logger)

	assert.NotNil(t, codec)
	assert.Equal(t, logger, codec.logger)

	var _ DNSCodec = codec
}
