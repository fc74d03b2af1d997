package transport

import (
	"encoding/binary"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Direction marks whether a captured datagram was received or sent.
type Direction uint8

const (
	Inbound  Direction = 0
	Outbound Direction = 1
)

// CaptureEntry is one recorded datagram: direction, wall-clock
// timestamp, the peer address it was captured for, and the raw bytes.
type CaptureEntry struct {
	Direction   Direction
	TimestampMS uint64
	Addr        net.Addr
	Data        []byte
}

// writeEntry appends one record in the fixed
// (direction:u8, millis:u64, addr_len:u16, addr:ascii, len:u32, bytes)
// layout to w.
func writeEntry(w *os.File, e CaptureEntry) error {
	addrStr := e.Addr.String()
	head := make([]byte, 0, 1+8+2+len(addrStr)+4)
	head = append(head, byte(e.Direction))
	var tmp8 [8]byte
	binary.LittleEndian.PutUint64(tmp8[:], e.TimestampMS)
	head = append(head, tmp8[:]...)
	var tmp2 [2]byte
	binary.LittleEndian.PutUint16(tmp2[:], uint16(len(addrStr)))
	head = append(head, tmp2[:]...)
	head = append(head, addrStr...)
	var tmp4 [4]byte
	binary.LittleEndian.PutUint32(tmp4[:], uint32(len(e.Data)))
	head = append(head, tmp4[:]...)

	if _, err := w.Write(head); err != nil {
		return fmt.Errorf("transport: capture write header: %w", err)
	}
	if _, err := w.Write(e.Data); err != nil {
		return fmt.Errorf("transport: capture write body: %w", err)
	}
	return w.Sync()
}

// readEntry reads one record from r, or returns (nil, nil) at a clean
// end-of-file boundary.
func readEntry(r *os.File) (*CaptureEntry, error) {
	var dirByte [1]byte
	if _, err := r.Read(dirByte[:]); err != nil {
		return nil, nil
	}
	var tmp8 [8]byte
	if _, err := readFull(r, tmp8[:]); err != nil {
		return nil, err
	}
	timestampMS := binary.LittleEndian.Uint64(tmp8[:])

	var tmp2 [2]byte
	if _, err := readFull(r, tmp2[:]); err != nil {
		return nil, err
	}
	addrLen := binary.LittleEndian.Uint16(tmp2[:])
	addrBuf := make([]byte, addrLen)
	if _, err := readFull(r, addrBuf); err != nil {
		return nil, err
	}
	addr, err := net.ResolveUDPAddr("udp", string(addrBuf))
	if err != nil {
		return nil, fmt.Errorf("transport: capture entry invalid address %q: %w", addrBuf, err)
	}

	var tmp4 [4]byte
	if _, err := readFull(r, tmp4[:]); err != nil {
		return nil, err
	}
	dataLen := binary.LittleEndian.Uint32(tmp4[:])
	data := make([]byte, dataLen)
	if _, err := readFull(r, data); err != nil {
		return nil, err
	}

	return &CaptureEntry{
		Direction:   Direction(dirByte[0]),
		TimestampMS: timestampMS,
		Addr:        addr,
		Data:        data,
	}, nil
}

func readFull(r *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// CaptureWriter appends every datagram passed to WriteEntry to an
// append-only file, in arrival order.
type CaptureWriter struct {
	mu   sync.Mutex
	file *os.File
}

// CreateCapture creates (or truncates) the capture file at path.
func CreateCapture(path string) (*CaptureWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("transport: create capture file: %w", err)
	}
	return &CaptureWriter{file: f}, nil
}

func (c *CaptureWriter) WriteEntry(direction Direction, addr net.Addr, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeEntry(c.file, CaptureEntry{
		Direction:   direction,
		TimestampMS: uint64(time.Now().UnixMilli()),
		Addr:        addr,
		Data:        data,
	})
}

func (c *CaptureWriter) Close() error { return c.file.Close() }

// CaptureTransport wraps another Transport and tees every inbound and
// outbound datagram to a CaptureWriter. This is the minimal writer side
// of the capture/replay feature: the rich recorder/inspector tooling is
// an external collaborator, but the core must still be able to produce
// the file a `capture` config path names.
type CaptureTransport struct {
	inner  Transport
	writer *CaptureWriter
}

func NewCaptureTransport(inner Transport, writer *CaptureWriter) *CaptureTransport {
	return &CaptureTransport{inner: inner, writer: writer}
}

func (c *CaptureTransport) SendTo(buf []byte, addr net.Addr) (int, error) {
	n, err := c.inner.SendTo(buf, addr)
	if err == nil {
		_ = c.writer.WriteEntry(Outbound, addr, buf)
	}
	return n, err
}

func (c *CaptureTransport) RecvFrom(buf []byte) (int, net.Addr, error) {
	n, addr, err := c.inner.RecvFrom(buf)
	if err == nil {
		_ = c.writer.WriteEntry(Inbound, addr, buf[:n])
	}
	return n, addr, err
}

func (c *CaptureTransport) Close() error {
	_ = c.writer.Close()
	return c.inner.Close()
}
