// Package transport provides the datagram send/receive abstraction the
// session layer runs over: a real UDP socket, or a file-backed replay
// source for offline testing and bug reports.
package transport

import (
	"fmt"
	"net"
	"time"
)

// Transport is the abstraction a Session drives exclusively: send_to and
// recv_from, addressed by net.Addr so the same interface covers a live
// UDP socket and a replay reader with no recorded address to dial.
type Transport interface {
	SendTo(buf []byte, addr net.Addr) (int, error)
	RecvFrom(buf []byte) (int, net.Addr, error)
	Close() error
}

// UDPTransport is the live network Transport.
type UDPTransport struct {
	conn *net.UDPConn
}

// DialUDP opens an unconnected UDP socket bound to laddr; SendTo can
// address any *net.UDPAddr through it.
func DialUDP(laddr *net.UDPAddr) (*UDPTransport, error) {
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen udp: %w", err)
	}
	return &UDPTransport{conn: conn}, nil
}

func (t *UDPTransport) SendTo(buf []byte, addr net.Addr) (int, error) {
	udpAddr, ok := addr.(*net.UDPAddr)
	if !ok {
		return 0, fmt.Errorf("transport: addr is not a *net.UDPAddr: %T", addr)
	}
	return t.conn.WriteToUDP(buf, udpAddr)
}

func (t *UDPTransport) RecvFrom(buf []byte) (int, net.Addr, error) {
	n, addr, err := t.conn.ReadFromUDP(buf)
	return n, addr, err
}

func (t *UDPTransport) Close() error { return t.conn.Close() }

// SetReadDeadline sets the underlying socket's read deadline to d from
// now; the holtburger command calls it once with the configured timeout.
func (t *UDPTransport) SetReadDeadline(d time.Duration) error {
	return t.conn.SetReadDeadline(time.Now().Add(d))
}
