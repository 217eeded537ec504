package sampquery

import (
	"crypto/rand"
	"net"

	"github.com/lanikai/sampquery/internal/packet"
	"github.com/lanikai/sampquery/internal/protocol"
)

const (
	maxRconPasswordLen = 255
	maxRconCommandLen  = 1024
)

// buildRequest encodes a header-only query (Information, Rules, ClientList,
// DetailedPlayerInfo).
func buildRequest(peer *net.UDPAddr, kind protocol.Kind) ([]byte, *Error) {
	w := packet.NewWriter(protocol.HeaderSize)
	if err := packet.BuildHeader(w, peer, protocol.Opcode(kind)); err != nil {
		return nil, translatePacketError(err)
	}
	return w.Bytes(), nil
}

// buildPingRequest encodes a Ping query and returns both the request bytes
// and the nonce the caller must match against the response.
func buildPingRequest(peer *net.UDPAddr) ([]byte, [4]byte, *Error) {
	var nonce [4]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, nonce, newError(KindSend, "generating ping nonce", err)
	}

	w := packet.NewWriter(protocol.HeaderSize + 4)
	if err := packet.BuildHeader(w, peer, protocol.Opcode(protocol.Ping)); err != nil {
		return nil, nonce, translatePacketError(err)
	}
	w.WriteSlice(nonce[:])
	return w.Bytes(), nonce, nil
}

// buildRconRequest encodes an Rcon query. The wire layout is the header,
// followed by the str16-prefixed password, then the str16-prefixed
// command.
func buildRconRequest(peer *net.UDPAddr, password, command string) ([]byte, *Error) {
	if len(password) > maxRconPasswordLen {
		return nil, newError(KindInvalidArgument, "rcon password exceeds 255 bytes", nil)
	}
	if len(command) > maxRconCommandLen {
		return nil, newError(KindInvalidArgument, "rcon command exceeds 1024 bytes", nil)
	}

	w := packet.NewWriter(protocol.HeaderSize + 2 + len(password) + 2 + len(command))
	if err := packet.BuildHeader(w, peer, protocol.Opcode(protocol.Rcon)); err != nil {
		return nil, translatePacketError(err)
	}
	w.WriteStringU16(password)
	w.WriteStringU16(command)
	return w.Bytes(), nil
}
