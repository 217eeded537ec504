package sampquery

import (
	"fmt"
	"strings"
)

// ServerInfo is the decoded result of an Information query.
type ServerInfo struct {
	Password   bool
	Players    uint16
	MaxPlayers uint16
	Hostname   string
	Gamemode   string
	Language   string
}

func (i ServerInfo) String() string {
	locked := "no"
	if i.Password {
		locked = "yes"
	}
	return fmt.Sprintf("%s [%d/%d] gamemode=%s language=%s password=%s",
		i.Hostname, i.Players, i.MaxPlayers, i.Gamemode, i.Language, locked)
}

// ServerRules is the decoded result of a Rules query: an unordered mapping
// of rule name to value. A duplicate name in the wire payload overwrites
// its earlier value, as the protocol does not define multi-valued rules.
type ServerRules struct {
	Rules map[string]string
}

func (r ServerRules) String() string {
	var b strings.Builder
	for name, value := range r.Rules {
		fmt.Fprintf(&b, "%s=%s ", name, value)
	}
	return strings.TrimSpace(b.String())
}

// Player is one entry in a ClientList response.
type Player struct {
	Name  string
	Score int32
}

func (p Player) String() string {
	return fmt.Sprintf("%s (score %d)", p.Name, p.Score)
}

// PlayerList is the decoded result of a ClientList query.
type PlayerList struct {
	Players []Player
}

// DetailedPlayer is one entry in a DetailedPlayerInfo response.
type DetailedPlayer struct {
	ID    uint8
	Name  string
	Score int32
	Ping  uint32
}

func (p DetailedPlayer) String() string {
	return fmt.Sprintf("#%d %s (score %d, ping %d)", p.ID, p.Name, p.Score, p.Ping)
}

// DetailedPlayerList is the decoded result of a DetailedPlayerInfo query.
type DetailedPlayerList struct {
	Players []DetailedPlayer
}

// PingInfo is the decoded result of a Ping query: round-trip time measured
// by the client's monotonic clock, not anything the server reports.
type PingInfo struct {
	ElapsedMS int64
}

func (p PingInfo) String() string {
	return fmt.Sprintf("%dms", p.ElapsedMS)
}

// RconResponse is the decoded result of an Rcon query.
type RconResponse struct {
	Message string
}

func (r RconResponse) String() string {
	return r.Message
}
