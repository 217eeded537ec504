package sampquery

import (
	"unicode/utf8"

	"github.com/lanikai/sampquery/internal/packet"
)

// decodeInformation parses the payload of an Information response.
func decodeInformation(payload []byte) (ServerInfo, *Error) {
	r := packet.NewReader(payload)

	password, err := r.ReadByte()
	if err != nil {
		return ServerInfo{}, translatePacketError(err)
	}
	players, err := r.ReadUint16()
	if err != nil {
		return ServerInfo{}, translatePacketError(err)
	}
	maxPlayers, err := r.ReadUint16()
	if err != nil {
		return ServerInfo{}, translatePacketError(err)
	}
	hostname, err := r.ReadStringU32()
	if err != nil {
		return ServerInfo{}, translatePacketError(err)
	}
	gamemode, err := r.ReadStringU32()
	if err != nil {
		return ServerInfo{}, translatePacketError(err)
	}
	language, err := r.ReadStringU32()
	if err != nil {
		return ServerInfo{}, translatePacketError(err)
	}

	return ServerInfo{
		Password:   password != 0,
		Players:    players,
		MaxPlayers: maxPlayers,
		Hostname:   hostname,
		Gamemode:   gamemode,
		Language:   language,
	}, nil
}

// decodeRules parses the payload of a Rules response: a uint16 count
// followed by that many (name, value) string pairs, each str8-prefixed.
func decodeRules(payload []byte) (ServerRules, *Error) {
	r := packet.NewReader(payload)

	count, err := r.ReadUint16()
	if err != nil {
		return ServerRules{}, translatePacketError(err)
	}

	rules := make(map[string]string, count)
	for i := uint16(0); i < count; i++ {
		name, err := r.ReadStringU8()
		if err != nil {
			return ServerRules{}, translatePacketError(err)
		}
		value, err := r.ReadStringU8()
		if err != nil {
			return ServerRules{}, translatePacketError(err)
		}
		rules[name] = value
	}

	return ServerRules{Rules: rules}, nil
}

// decodeClientList parses the payload of a ClientList response: a uint16
// count followed by that many (name, score) entries.
func decodeClientList(payload []byte) (PlayerList, *Error) {
	r := packet.NewReader(payload)

	count, err := r.ReadUint16()
	if err != nil {
		return PlayerList{}, translatePacketError(err)
	}

	players := make([]Player, 0, count)
	for i := uint16(0); i < count; i++ {
		name, err := r.ReadStringU8()
		if err != nil {
			return PlayerList{}, translatePacketError(err)
		}
		score, err := r.ReadInt32()
		if err != nil {
			return PlayerList{}, translatePacketError(err)
		}
		players = append(players, Player{Name: name, Score: score})
	}

	return PlayerList{Players: players}, nil
}

// decodeDetailedPlayerInfo parses the payload of a DetailedPlayerInfo
// response: a uint16 count followed by that many (id, name, score, ping)
// entries.
func decodeDetailedPlayerInfo(payload []byte) (DetailedPlayerList, *Error) {
	r := packet.NewReader(payload)

	count, err := r.ReadUint16()
	if err != nil {
		return DetailedPlayerList{}, translatePacketError(err)
	}

	players := make([]DetailedPlayer, 0, count)
	for i := uint16(0); i < count; i++ {
		id, err := r.ReadByte()
		if err != nil {
			return DetailedPlayerList{}, translatePacketError(err)
		}
		name, err := r.ReadStringU8()
		if err != nil {
			return DetailedPlayerList{}, translatePacketError(err)
		}
		score, err := r.ReadInt32()
		if err != nil {
			return DetailedPlayerList{}, translatePacketError(err)
		}
		ping, err := r.ReadUint32()
		if err != nil {
			return DetailedPlayerList{}, translatePacketError(err)
		}
		players = append(players, DetailedPlayer{ID: id, Name: name, Score: score, Ping: ping})
	}

	return DetailedPlayerList{Players: players}, nil
}

// decodePing checks that the payload echoes the 4-byte nonce sent with the
// request. The server is not expected to add anything else to the payload.
func decodePing(payload []byte, nonce [4]byte) *Error {
	if len(payload) < 4 {
		return newError(KindInvalidResponse, "ping response shorter than nonce", nil)
	}
	for i := 0; i < 4; i++ {
		if payload[i] != nonce[i] {
			return newError(KindInvalidResponse, "ping response nonce mismatch", nil)
		}
	}
	return nil
}

// decodeRcon parses the payload of an Rcon response: the entire payload is
// raw UTF-8 text, with no length prefix. A single RCON command may
// legitimately produce zero, one, or many response lines, one per
// datagram; a fully empty first response indicates the password was
// rejected before the server sent anything.
func decodeRcon(payload []byte) (RconResponse, *Error) {
	if len(payload) == 0 {
		return RconResponse{}, newError(KindRconAuthFailed, "", nil)
	}
	if !utf8.Valid(payload) {
		return RconResponse{}, newError(KindInvalidUTF8, "", nil)
	}
	return RconResponse{Message: string(payload)}, nil
}
