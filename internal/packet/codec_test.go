package packet

import (
	"net"
	"testing"

	"github.com/lanikai/sampquery/internal/protocol"
)

func TestBuildHeader(t *testing.T) {
	peer := &net.UDPAddr{IP: net.IPv4(203, 0, 113, 7), Port: 7777}
	w := NewWriter(protocol.HeaderSize)
	if err := BuildHeader(w, peer, protocol.Opcode(protocol.Information)); err != nil {
		t.Fatalf("BuildHeader: %v", err)
	}

	b := w.Bytes()
	if len(b) != protocol.HeaderSize {
		t.Fatalf("header length = %d, want %d", len(b), protocol.HeaderSize)
	}
	if string(b[0:4]) != protocol.Signature {
		t.Errorf("signature = %q, want %q", b[0:4], protocol.Signature)
	}
	if !net.IP(b[4:8]).Equal(net.IPv4(203, 0, 113, 7).To4()) {
		t.Errorf("address octets = %v, want 203.0.113.7", b[4:8])
	}
	if got := uint16(b[8]) | uint16(b[9])<<8; got != 7777 {
		t.Errorf("port = %d, want 7777", got)
	}
	if b[10] != 'i' {
		t.Errorf("opcode = %q, want 'i'", b[10])
	}
}

func TestBuildHeaderRejectsIPv6(t *testing.T) {
	peer := &net.UDPAddr{IP: net.ParseIP("::1"), Port: 7777}
	w := NewWriter(protocol.HeaderSize)
	err := BuildHeader(w, peer, protocol.Opcode(protocol.Information))
	if err == nil {
		t.Fatal("expected error for IPv6 address")
	}
	if _, ok := err.(*ErrUnsupportedAddress); !ok {
		t.Errorf("err = %T, want *ErrUnsupportedAddress", err)
	}
}

func TestValidateAndStrip(t *testing.T) {
	payload := []byte("hello")
	datagram := append(append([]byte(protocol.Signature), make([]byte, protocol.HeaderSize-4)...), payload...)

	got, err := ValidateAndStrip(datagram)
	if err != nil {
		t.Fatalf("ValidateAndStrip: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("payload = %q, want %q", got, "hello")
	}
}

func TestValidateAndStripTooShort(t *testing.T) {
	_, err := ValidateAndStrip(make([]byte, protocol.HeaderSize-1))
	if _, ok := err.(*ErrHeaderTooShort); !ok {
		t.Errorf("err = %v (%T), want *ErrHeaderTooShort", err, err)
	}
}

func TestValidateAndStripBadSignature(t *testing.T) {
	datagram := make([]byte, protocol.HeaderSize)
	copy(datagram, "XXXX")
	_, err := ValidateAndStrip(datagram)
	if _, ok := err.(*ErrBadSignature); !ok {
		t.Errorf("err = %v (%T), want *ErrBadSignature", err, err)
	}
}

func TestValidateAndStripIgnoresMismatchedEcho(t *testing.T) {
	// A server that echoes back a different address/port/opcode than the
	// request is still accepted: only the signature is checked.
	datagram := make([]byte, protocol.HeaderSize+2)
	copy(datagram, protocol.Signature)
	datagram[10] = 'z' // not a recognized opcode, but that's fine here
	datagram[protocol.HeaderSize] = 0xAB
	datagram[protocol.HeaderSize+1] = 0xCD

	got, err := ValidateAndStrip(datagram)
	if err != nil {
		t.Fatalf("ValidateAndStrip: %v", err)
	}
	if len(got) != 2 || got[0] != 0xAB || got[1] != 0xCD {
		t.Errorf("payload = %v, want [0xAB 0xCD]", got)
	}
}
