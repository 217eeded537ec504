// Package sampquery implements the SA-MP server query protocol: a small
// UDP request/response exchange used to retrieve server information,
// game rules, connected players, and to issue RCON commands.
//
// The package does no logging of its own; callers that want visibility
// into query traffic should wrap Client or log around its calls.
package sampquery

import (
	"context"
	"net"
	"time"

	"github.com/lanikai/sampquery/internal/packet"
	"github.com/lanikai/sampquery/internal/protocol"
)

// ClientConfig controls the timeout and retry behavior of a Client.
type ClientConfig struct {
	// Timeout bounds how long a single attempt waits for a response
	// before the next attempt (or failure) is attempted.
	Timeout time.Duration

	// MaxRetries is the total number of attempts made per query, not the
	// number of retries in addition to a first attempt. A value of 1
	// means a single attempt with no retry.
	MaxRetries uint32
}

// DefaultClientConfig returns the configuration used by Connect when none
// is supplied: a 1 second per-attempt timeout and 3 total attempts.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:    protocol.DefaultTimeoutMS * time.Millisecond,
		MaxRetries: protocol.DefaultMaxRetries,
	}
}

// Client queries a single SA-MP server. A Client is bound to one peer
// address for its lifetime. Only one query may be in flight on a given
// Client at a time; Client does not serialize concurrent calls itself, and
// overlapping calls on one Client may receive each other's responses.
type Client struct {
	conn *net.UDPConn
	peer *net.UDPAddr
	cfg  ClientConfig
}

// Connect resolves nothing itself: peer must already be a parsed IPv4
// UDP address. Callers that have a host:port string should parse it with
// net.ResolveUDPAddr and translate failures to KindAddrParse themselves,
// since address parsing is a collaborator concern, not a library one.
func Connect(peer *net.UDPAddr, cfg ...ClientConfig) (*Client, error) {
	c := DefaultClientConfig()
	if len(cfg) > 0 {
		c = cfg[0]
	}
	if c.MaxRetries == 0 {
		return nil, newError(KindInvalidArgument, "MaxRetries must be at least 1", nil)
	}
	if peer.IP.To4() == nil {
		return nil, newError(KindUnsupportedAddress, "peer address must be IPv4", nil)
	}

	conn, err := net.DialUDP("udp4", nil, peer)
	if err != nil {
		return nil, newError(KindConnect, "connecting to peer", err)
	}

	return &Client{conn: conn, peer: peer, cfg: c}, nil
}

// Close releases the underlying UDP socket.
func (c *Client) Close() error {
	return c.conn.Close()
}

// sendQuery sends request and returns the first response payload received
// within the configured timeout and retry budget, with the 11-byte header
// validated and stripped. It makes at most c.cfg.MaxRetries attempts total.
func (c *Client) sendQuery(ctx context.Context, request []byte) ([]byte, *Error) {
	buf := make([]byte, protocol.MaxPacketSize)

	// Unblock a pending read as soon as ctx is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	var lastErr *Error
	for attempt := uint32(0); attempt < c.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, newError(KindTimeout, "context canceled", err)
		}

		if _, err := c.conn.Write(request); err != nil {
			return nil, newError(KindSend, "writing request", err)
		}

		deadline := time.Now().Add(c.cfg.Timeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return nil, newError(KindReceive, "setting read deadline", err)
		}
		if ctx.Err() != nil {
			continue
		}

		n, err := c.conn.Read(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				lastErr = newError(KindTimeout, "", nil)
				continue
			}
			return nil, newError(KindReceive, "reading response", err)
		}

		payload, verr := packet.ValidateAndStrip(buf[:n])
		if verr != nil {
			return nil, translatePacketError(verr)
		}
		return payload, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, newError(KindTimeout, "", nil)
}

// QueryInfo issues an Information query.
func (c *Client) QueryInfo(ctx context.Context) (ServerInfo, error) {
	req, berr := buildRequest(c.peer, protocol.Information)
	if berr != nil {
		return ServerInfo{}, berr
	}
	payload, err := c.sendQuery(ctx, req)
	if err != nil {
		return ServerInfo{}, err
	}
	info, derr := decodeInformation(payload)
	if derr != nil {
		return ServerInfo{}, derr
	}
	return info, nil
}

// QueryRules issues a Rules query.
func (c *Client) QueryRules(ctx context.Context) (ServerRules, error) {
	req, berr := buildRequest(c.peer, protocol.Rules)
	if berr != nil {
		return ServerRules{}, berr
	}
	payload, err := c.sendQuery(ctx, req)
	if err != nil {
		return ServerRules{}, err
	}
	rules, derr := decodeRules(payload)
	if derr != nil {
		return ServerRules{}, derr
	}
	return rules, nil
}

// QueryClientList issues a ClientList query.
func (c *Client) QueryClientList(ctx context.Context) (PlayerList, error) {
	req, berr := buildRequest(c.peer, protocol.ClientList)
	if berr != nil {
		return PlayerList{}, berr
	}
	payload, err := c.sendQuery(ctx, req)
	if err != nil {
		return PlayerList{}, err
	}
	list, derr := decodeClientList(payload)
	if derr != nil {
		return PlayerList{}, derr
	}
	return list, nil
}

// QueryDetailedPlayerInfo issues a DetailedPlayerInfo query.
func (c *Client) QueryDetailedPlayerInfo(ctx context.Context) (DetailedPlayerList, error) {
	req, berr := buildRequest(c.peer, protocol.DetailedPlayerInfo)
	if berr != nil {
		return DetailedPlayerList{}, berr
	}
	payload, err := c.sendQuery(ctx, req)
	if err != nil {
		return DetailedPlayerList{}, err
	}
	list, derr := decodeDetailedPlayerInfo(payload)
	if derr != nil {
		return DetailedPlayerList{}, derr
	}
	return list, nil
}

// QueryPing issues a Ping query and reports the elapsed round-trip time.
func (c *Client) QueryPing(ctx context.Context) (PingInfo, error) {
	req, nonce, berr := buildPingRequest(c.peer)
	if berr != nil {
		return PingInfo{}, berr
	}

	start := time.Now()
	payload, err := c.sendQuery(ctx, req)
	if err != nil {
		return PingInfo{}, err
	}
	elapsed := time.Since(start)

	if derr := decodePing(payload, nonce); derr != nil {
		return PingInfo{}, derr
	}
	return PingInfo{ElapsedMS: elapsed.Milliseconds()}, nil
}

// Rcon issues an RCON command using password and returns the server's
// response line. An empty response indicates the password was rejected.
func (c *Client) Rcon(ctx context.Context, password, command string) (RconResponse, error) {
	req, berr := buildRconRequest(c.peer, password, command)
	if berr != nil {
		return RconResponse{}, berr
	}
	payload, err := c.sendQuery(ctx, req)
	if err != nil {
		return RconResponse{}, err
	}
	resp, derr := decodeRcon(payload)
	if derr != nil {
		return RconResponse{}, derr
	}
	return resp, nil
}
