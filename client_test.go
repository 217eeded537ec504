package sampquery

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lanikai/sampquery/internal/packet"
	"github.com/lanikai/sampquery/internal/protocol"
)

// fakeServer is a minimal UDP responder used to drive Client against
// canned or programmatic responses without a real SA-MP server.
type fakeServer struct {
	conn *net.UDPConn
}

func startFakeServer(t *testing.T, handle func(peer *net.UDPAddr, req []byte) []byte) *fakeServer {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	s := &fakeServer{conn: conn}

	go func() {
		buf := make([]byte, protocol.MaxPacketSize)
		for {
			n, from, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			resp := handle(from, buf[:n])
			if resp != nil {
				conn.WriteToUDP(resp, from)
			}
		}
	}()

	t.Cleanup(func() { conn.Close() })
	return s
}

func (s *fakeServer) addr() *net.UDPAddr {
	return s.conn.LocalAddr().(*net.UDPAddr)
}

func buildResponseHeader(peer *net.UDPAddr, opcode byte) *packet.Writer {
	w := packet.NewWriter(protocol.HeaderSize)
	packet.BuildHeader(w, peer, opcode)
	return w
}

func TestClientQueryInfo(t *testing.T) {
	srv := startFakeServer(t, func(peer *net.UDPAddr, req []byte) []byte {
		w := buildResponseHeader(peer, protocol.Opcode(protocol.Information))
		w.WriteByte(1)          // password
		w.WriteUint16(12)       // players
		w.WriteUint16(32)       // max players
		w.WriteStringU32("Test Server")
		w.WriteStringU32("Freeroam")
		w.WriteStringU32("en")
		return w.Bytes()
	})

	c, err := Connect(srv.addr())
	if !assert.NoError(t, err) {
		return
	}
	defer c.Close()

	info, err := c.QueryInfo(context.Background())
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, info.Password)
	assert.EqualValues(t, 12, info.Players)
	assert.EqualValues(t, 32, info.MaxPlayers)
	assert.Equal(t, "Test Server", info.Hostname)
	assert.Equal(t, "Freeroam", info.Gamemode)
	assert.Equal(t, "en", info.Language)
}

func TestClientQueryRules(t *testing.T) {
	srv := startFakeServer(t, func(peer *net.UDPAddr, req []byte) []byte {
		w := buildResponseHeader(peer, protocol.Opcode(protocol.Rules))
		w.WriteUint16(1)
		w.WriteStringU8("mapname")
		w.WriteStringU8("Los Santos")
		return w.Bytes()
	})

	c, err := Connect(srv.addr())
	if !assert.NoError(t, err) {
		return
	}
	defer c.Close()

	rules, err := c.QueryRules(context.Background())
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "Los Santos", rules.Rules["mapname"])
}

func TestClientQueryPingMismatchIsInvalidResponse(t *testing.T) {
	srv := startFakeServer(t, func(peer *net.UDPAddr, req []byte) []byte {
		w := buildResponseHeader(peer, protocol.Opcode(protocol.Ping))
		w.WriteSlice([]byte{0, 0, 0, 0}) // never matches the real nonce
		return w.Bytes()
	})

	c, err := Connect(srv.addr())
	if !assert.NoError(t, err) {
		return
	}
	defer c.Close()

	_, err = c.QueryPing(context.Background())
	if !assert.Error(t, err) {
		return
	}
	serr, ok := err.(*Error)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, KindInvalidResponse, serr.Kind)
}

func TestClientRconEmptyResponseIsAuthFailed(t *testing.T) {
	srv := startFakeServer(t, func(peer *net.UDPAddr, req []byte) []byte {
		return buildResponseHeader(peer, protocol.Opcode(protocol.Rcon)).Bytes()
	})

	c, err := Connect(srv.addr())
	if !assert.NoError(t, err) {
		return
	}
	defer c.Close()

	_, err = c.Rcon(context.Background(), "wrongpass", "help")
	serr, ok := err.(*Error)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, KindRconAuthFailed, serr.Kind)
}

func TestClientTimeoutMakesExactlyMaxRetriesAttempts(t *testing.T) {
	var attempts int
	srv := startFakeServer(t, func(peer *net.UDPAddr, req []byte) []byte {
		attempts++
		return nil // never respond
	})

	c, err := Connect(srv.addr(), ClientConfig{Timeout: 20 * time.Millisecond, MaxRetries: 3})
	if !assert.NoError(t, err) {
		return
	}
	defer c.Close()

	_, err = c.QueryInfo(context.Background())
	if !assert.Error(t, err) {
		return
	}
	serr, ok := err.(*Error)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, KindTimeout, serr.Kind)

	// Give the server goroutine a moment to record the last datagram.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 3, attempts)
}

func TestClientRejectsZeroMaxRetries(t *testing.T) {
	_, err := Connect(&net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 7777}, ClientConfig{Timeout: time.Second, MaxRetries: 0})
	assert.Error(t, err)
}
