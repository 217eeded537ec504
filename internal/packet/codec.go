package packet

import (
	"fmt"
	"net"

	"github.com/lanikai/sampquery/internal/protocol"
)

// ErrUnsupportedAddress is returned by BuildHeader when the peer address is
// not an IPv4 address; the wire format has no slot for IPv6 octets.
type ErrUnsupportedAddress struct {
	Addr *net.UDPAddr
}

func (e *ErrUnsupportedAddress) Error() string {
	return fmt.Sprintf("packet: address %s is not IPv4", e.Addr)
}

// ErrHeaderTooShort is returned by ValidateAndStrip when a datagram is
// shorter than protocol.HeaderSize.
type ErrHeaderTooShort struct {
	Length int
}

func (e *ErrHeaderTooShort) Error() string {
	return fmt.Sprintf("packet: response is %d bytes, shorter than %d-byte header", e.Length, protocol.HeaderSize)
}

// ErrBadSignature is returned by ValidateAndStrip when the leading four bytes
// of a datagram are not the SAMP magic.
type ErrBadSignature struct {
	Got [4]byte
}

func (e *ErrBadSignature) Error() string {
	return fmt.Sprintf("packet: bad signature %q, want %q", e.Got[:], protocol.Signature)
}

// BuildHeader appends the 11-byte SA-MP request header (signature, IPv4
// octets, little-endian port, opcode) to w. It does not append any
// query-specific payload; callers append that themselves after calling
// BuildHeader.
func BuildHeader(w *Writer, peer *net.UDPAddr, opcode byte) error {
	ip4 := peer.IP.To4()
	if ip4 == nil {
		return &ErrUnsupportedAddress{Addr: peer}
	}

	w.WriteString(protocol.Signature)
	w.WriteSlice(ip4)
	w.WriteUint16(uint16(peer.Port))
	w.WriteByte(opcode)
	return nil
}

// ValidateAndStrip checks that data begins with a well-formed SA-MP header
// and returns the bytes following it. It deliberately does not cross-check
// the echoed address, port, or opcode against the request that prompted the
// response: servers are observed in practice to rewrite the address, and
// some omit echoing the opcode faithfully. Opcode-specific decoders are
// responsible for interpreting the returned payload.
func ValidateAndStrip(data []byte) ([]byte, error) {
	if len(data) < protocol.HeaderSize {
		return nil, &ErrHeaderTooShort{Length: len(data)}
	}
	var got [4]byte
	copy(got[:], data[0:4])
	if string(got[:]) != protocol.Signature {
		return nil, &ErrBadSignature{Got: got}
	}
	return data[protocol.HeaderSize:], nil
}
