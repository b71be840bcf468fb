// Package mcstatus implements the Minecraft Java Edition server list ping:
// a handshake plus status request over raw TCP, answered with a JSON
// status document.
package mcstatus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/lukec11/steve/internal/metrics"
)

// ErrDown marks a server that refused or timed out the connection.
var ErrDown = errors.New("server is down")

const (
	handshakePacketID = 0x00
	statusPacketID    = 0x00
	statusState       = 1

	// -1 asks the server to answer regardless of protocol version.
	protocolVersion = -1

	// Status responses are small JSON documents; anything bigger is bogus.
	maxResponseSize = 1 << 21
)

// Pinger issues server list pings with a bounded per-call timeout.
type Pinger struct {
	Timeout time.Duration
}

// NewPinger creates a Pinger with the given per-call timeout.
func NewPinger(timeout time.Duration) *Pinger {
	return &Pinger{Timeout: timeout}
}

// Ping queries the server at address (host:port) and returns its status.
// Connection failures map to ErrDown; malformed responses return a
// descriptive error.
func (p *Pinger) Ping(ctx context.Context, address string) (*Status, error) {
	start := time.Now()
	status, err := p.ping(ctx, address)
	metrics.PingLatency.Observe(time.Since(start).Seconds())
	return status, err
}

func (p *Pinger) ping(ctx context.Context, address string) (*Status, error) {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", address, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", portStr, err)
	}

	dialer := net.Dialer{Timeout: p.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDown, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(p.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err := writeHandshake(conn, host, uint16(port)); err != nil {
		return nil, fmt.Errorf("%w: handshake failed: %v", ErrDown, err)
	}
	if err := writePacket(conn, []byte{statusPacketID}); err != nil {
		return nil, fmt.Errorf("%w: status request failed: %v", ErrDown, err)
	}

	status, err := readStatus(bufio.NewReader(conn))
	if err != nil {
		return nil, err
	}
	return status, nil
}

// writeHandshake sends the handshake packet switching the connection into
// the status state.
func writeHandshake(w io.Writer, host string, port uint16) error {
	var buf bytes.Buffer
	buf.WriteByte(handshakePacketID)
	writeVarInt(&buf, protocolVersion)
	writeVarInt(&buf, int32(len(host)))
	buf.WriteString(host)
	binary.Write(&buf, binary.BigEndian, port)
	writeVarInt(&buf, statusState)
	return writePacket(w, buf.Bytes())
}

// writePacket frames payload with its varint length prefix.
func writePacket(w io.Writer, payload []byte) error {
	var buf bytes.Buffer
	writeVarInt(&buf, int32(len(payload)))
	buf.Write(payload)
	_, err := w.Write(buf.Bytes())
	return err
}

// readStatus reads the status response packet and decodes its JSON payload.
func readStatus(r *bufio.Reader) (*Status, error) {
	length, err := readVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read packet length: %w", err)
	}
	if length <= 0 || length > maxResponseSize {
		return nil, fmt.Errorf("implausible packet length %d", length)
	}

	packetID, err := readVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read packet id: %w", err)
	}
	if packetID != statusPacketID {
		return nil, fmt.Errorf("unexpected packet id 0x%02x", packetID)
	}

	jsonLen, err := readVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload length: %w", err)
	}
	if jsonLen <= 0 || jsonLen > maxResponseSize {
		return nil, fmt.Errorf("implausible payload length %d", jsonLen)
	}

	payload := make([]byte, jsonLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	var status Status
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status JSON: %w", err)
	}
	return &status, nil
}

// writeVarInt encodes v in the protocol's LEB128-style varint format.
func writeVarInt(buf *bytes.Buffer, v int32) {
	u := uint32(v)
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		buf.WriteByte(b)
		if u == 0 {
			return
		}
	}
}

// readVarInt decodes a varint, capped at 5 bytes.
func readVarInt(r io.ByteReader) (int32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int32(result), nil
		}
	}
	return 0, errors.New("varint too long")
}
