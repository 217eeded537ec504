package gateway

import (
	"net"
	"net/http"

	"github.com/pkg/errors"

	"github.com/lanikai/sampquery"
)

// resolveAddr parses a "host:port" string into a UDP address, wrapping any
// failure as a *sampquery.Error with KindAddrParse so statusFor can map it
// the same way it maps errors returned by the client itself.
func resolveAddr(addr string) (*net.UDPAddr, error) {
	peer, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, &sampquery.Error{
			Kind:   sampquery.KindAddrParse,
			Reason: errors.Wrapf(err, "resolving %q", addr).Error(),
		}
	}
	return peer, nil
}

// statusFor maps a query error onto an HTTP status code, per the closed
// Kind taxonomy in package sampquery.
func statusFor(err error) int {
	serr, ok := err.(*sampquery.Error)
	if !ok {
		return http.StatusInternalServerError
	}

	switch serr.Kind {
	case sampquery.KindAddrParse, sampquery.KindInvalidArgument, sampquery.KindUnsupportedAddress:
		return http.StatusBadRequest
	case sampquery.KindTimeout:
		return http.StatusGatewayTimeout
	case sampquery.KindConnect, sampquery.KindBind, sampquery.KindSend, sampquery.KindReceive:
		return http.StatusBadGateway
	case sampquery.KindRconAuthFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
