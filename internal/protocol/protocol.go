// Package protocol holds the compile-time constants and opcode table for the
// SA-MP query mechanism: the wire magic, header size, datagram bounds, and
// the mapping between a query kind and its single-byte opcode.
package protocol

import "fmt"

const (
	// Signature is the 4-byte magic that opens every request and response
	// datagram.
	Signature = "SAMP"

	// HeaderSize is the number of bytes in the fixed request/response header
	// (signature + IPv4 address + port + opcode).
	HeaderSize = 11

	// MaxPacketSize bounds both the datagram size and any length-prefixed
	// string found within one.
	MaxPacketSize = 2048

	// DefaultTimeoutMS is the default per-attempt receive deadline.
	DefaultTimeoutMS = 1000

	// DefaultMaxRetries is the default total number of send attempts per
	// query (not additional retries on top of a first attempt).
	DefaultMaxRetries = 3
)

// Kind identifies one of the six SA-MP query types. Its zero value is not a
// valid kind.
type Kind byte

const (
	Information Kind = iota + 1
	Rules
	ClientList
	DetailedPlayerInfo
	Ping
	Rcon
)

var kindNames = map[Kind]string{
	Information:        "Information",
	Rules:              "Rules",
	ClientList:         "ClientList",
	DetailedPlayerInfo: "DetailedPlayerInfo",
	Ping:               "Ping",
	Rcon:               "Rcon",
}

// String returns a human-readable name for the kind, e.g. "Information".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

var opcodes = map[Kind]byte{
	Information:        'i',
	Rules:              'r',
	ClientList:         'c',
	DetailedPlayerInfo: 'd',
	Ping:               'p',
	Rcon:               'x',
}

var kindsByOpcode = func() map[byte]Kind {
	m := make(map[byte]Kind, len(opcodes))
	for k, op := range opcodes {
		m[op] = k
	}
	return m
}()

// Opcode returns the wire opcode byte for a query kind. It panics on an
// unrecognized kind, since the kind space is closed and compile-time known;
// any caller that can produce an invalid Kind has a programming error.
func Opcode(k Kind) byte {
	op, ok := opcodes[k]
	if !ok {
		panic(fmt.Sprintf("protocol: unknown query kind %v", k))
	}
	return op
}

// KindFromOpcode returns the query kind for a wire opcode byte. ok is false
// for any byte that is not one of the six recognized opcodes.
func KindFromOpcode(opcode byte) (k Kind, ok bool) {
	k, ok = kindsByOpcode[opcode]
	return
}
