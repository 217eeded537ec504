// Package packet provides a cursor-style reader/writer pair used to encode
// and decode SA-MP query datagrams. Unlike a trusted in-process buffer, the
// Reader here is built to survive truncated or adversarial input from the
// network: every read checks remaining length and returns an error instead
// of panicking.
package packet

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/lanikai/sampquery/internal/protocol"
)

// networkOrder is little-endian, per the SA-MP wire format. This is the one
// deliberate deviation from the big-endian network byte order convention:
// the protocol itself is little-endian and that quirk must be preserved
// exactly (see protocol.Signature and spec §3).
var networkOrder = binary.LittleEndian

// ErrShortRead is returned whenever a Reader is asked for more bytes than
// remain in its buffer.
type ErrShortRead struct {
	Remaining int
	Needed    int
}

func (e *ErrShortRead) Error() string {
	return fmt.Sprintf("packet: short read: %d bytes remaining, %d needed", e.Remaining, e.Needed)
}

// ErrStringTooLong is returned when a length-prefixed string's declared
// length exceeds protocol.MaxPacketSize.
type ErrStringTooLong struct {
	Length int
}

func (e *ErrStringTooLong) Error() string {
	return fmt.Sprintf("packet: string length %d exceeds max packet size %d", e.Length, protocol.MaxPacketSize)
}

// ErrInvalidUTF8 is returned when a length-prefixed string's bytes do not
// decode as valid UTF-8.
type ErrInvalidUTF8 struct {
	Bytes []byte
}

func (e *ErrInvalidUTF8) Error() string {
	return fmt.Sprintf("packet: invalid UTF-8 in %d-byte string", len(e.Bytes))
}

// Reader is a forward-only cursor over a byte slice.
type Reader struct {
	buffer []byte
	offset int
}

// NewReader wraps buffer for sequential reads starting at offset 0.
func NewReader(buffer []byte) *Reader {
	return &Reader{buffer: buffer}
}

// Remaining returns the number of unread bytes left in the buffer.
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.offset
}

func (r *Reader) checkRemaining(needed int) error {
	if r.Remaining() < needed {
		return &ErrShortRead{Remaining: r.Remaining(), Needed: needed}
	}
	return nil
}

// ReadByte reads a single byte (also satisfies io.ByteReader).
func (r *Reader) ReadByte() (byte, error) {
	if err := r.checkRemaining(1); err != nil {
		return 0, err
	}
	v := r.buffer[r.offset]
	r.offset++
	return v, nil
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.checkRemaining(2); err != nil {
		return 0, err
	}
	v := networkOrder.Uint16(r.buffer[r.offset:])
	r.offset += 2
	return v, nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.checkRemaining(4); err != nil {
		return 0, err
	}
	v := networkOrder.Uint32(r.buffer[r.offset:])
	r.offset += 4
	return v, nil
}

// ReadInt32 reads a little-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadSlice reads the next n raw bytes without copying.
func (r *Reader) ReadSlice(n int) ([]byte, error) {
	if err := r.checkRemaining(n); err != nil {
		return nil, err
	}
	v := r.buffer[r.offset : r.offset+n]
	r.offset += n
	return v, nil
}

// ReadRemaining returns every unread byte.
func (r *Reader) ReadRemaining() []byte {
	v := r.buffer[r.offset:]
	r.offset += len(v)
	return v
}

func readString(r *Reader, length int) (string, error) {
	if length > protocol.MaxPacketSize {
		return "", &ErrStringTooLong{Length: length}
	}
	b, err := r.ReadSlice(length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &ErrInvalidUTF8{Bytes: b}
	}
	return string(b), nil
}

// ReadStringU8 reads a 1-byte length prefix followed by that many bytes of
// UTF-8 text (the str8 format used by Rules/ClientList/DetailedPlayerInfo).
func (r *Reader) ReadStringU8() (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	return readString(r, int(n))
}

// ReadStringU16 reads a 2-byte little-endian length prefix followed by that
// many bytes of UTF-8 text (the str16 format used by RCON).
func (r *Reader) ReadStringU16() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	return readString(r, int(n))
}

// ReadStringU32 reads a 4-byte little-endian length prefix followed by that
// many bytes of UTF-8 text (the str32 format used by Information).
func (r *Reader) ReadStringU32() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	return readString(r, int(n))
}
