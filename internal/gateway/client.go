// Package gateway exposes SA-MP server queries over HTTP and WebSocket.
package gateway

import (
	"context"

	"github.com/lanikai/sampquery"
)

// queryClient is the subset of *sampquery.Client the gateway depends on.
// Handlers are written against this interface, not the concrete type, so
// tests can substitute a fake without opening a real UDP socket.
type queryClient interface {
	QueryInfo(ctx context.Context) (sampquery.ServerInfo, error)
	QueryRules(ctx context.Context) (sampquery.ServerRules, error)
	QueryClientList(ctx context.Context) (sampquery.PlayerList, error)
	QueryDetailedPlayerInfo(ctx context.Context) (sampquery.DetailedPlayerList, error)
	QueryPing(ctx context.Context) (sampquery.PingInfo, error)
	Close() error
}

// dialer opens a queryClient for a peer address. In production this is
// sampquery.Connect; tests substitute a fake.
type dialer func(addr string) (queryClient, error)

func defaultDialer(addr string) (queryClient, error) {
	peer, err := resolveAddr(addr)
	if err != nil {
		return nil, err
	}
	return sampquery.Connect(peer)
}
