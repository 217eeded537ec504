package sampquery

import (
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lanikai/sampquery/internal/protocol"
)

func testPeer() *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv4(198, 51, 100, 1), Port: 7777}
}

func TestBuildRequestSetsOpcode(t *testing.T) {
	req, err := buildRequest(testPeer(), protocol.Rules)
	if !assert.Nil(t, err) {
		return
	}
	assert.Len(t, req, protocol.HeaderSize)
	assert.Equal(t, byte('r'), req[protocol.HeaderSize-1])
}

func TestBuildPingRequestAppendsNonce(t *testing.T) {
	req, nonce, err := buildPingRequest(testPeer())
	if !assert.Nil(t, err) {
		return
	}
	assert.Len(t, req, protocol.HeaderSize+4)
	assert.Equal(t, nonce[:], req[protocol.HeaderSize:])
}

func TestBuildRconRequestRejectsOversizedPassword(t *testing.T) {
	_, err := buildRconRequest(testPeer(), strings.Repeat("x", 256), "help")
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, KindInvalidArgument, err.Kind)
}

func TestBuildRconRequestRejectsOversizedCommand(t *testing.T) {
	_, err := buildRconRequest(testPeer(), "pass", strings.Repeat("x", 1025))
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, KindInvalidArgument, err.Kind)
}

func TestBuildRconRequestLayout(t *testing.T) {
	req, err := buildRconRequest(testPeer(), "hi", "help")
	if !assert.Nil(t, err) {
		return
	}
	body := req[protocol.HeaderSize:]
	// 2-byte length + "hi"
	assert.EqualValues(t, 2, body[0])
	assert.Equal(t, "hi", string(body[2:4]))
	// 2-byte command length + "help"
	cmdLen := uint16(body[4]) | uint16(body[5])<<8
	assert.EqualValues(t, 4, cmdLen)
	assert.Equal(t, "help", string(body[6:10]))
}
