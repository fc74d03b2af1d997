package transport

import (
	"fmt"
	"net"
	"os"
	"sync"
)

// CaptureReader reads CaptureEntry records back out of a file written by
// CaptureWriter, in recorded order.
type CaptureReader struct {
	mu   sync.Mutex
	file *os.File
}

// OpenCapture opens an existing capture file for replay.
func OpenCapture(path string) (*CaptureReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("transport: open capture file: %w", err)
	}
	return &CaptureReader{file: f}, nil
}

// ReadNext returns the next record, or (nil, nil) at end of file.
func (r *CaptureReader) ReadNext() (*CaptureEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return readEntry(r.file)
}

func (r *CaptureReader) Close() error { return r.file.Close() }

// ErrEndOfCapture is returned from RecvFrom once every inbound record in
// the capture has been delivered.
var ErrEndOfCapture = fmt.Errorf("transport: end of capture")

// ReplayTransport is a Transport backed by a CaptureReader: RecvFrom
// delivers only Inbound records in recorded order; SendTo is a no-op
// that always succeeds, since replay has nowhere to actually send.
type ReplayTransport struct {
	reader *CaptureReader
}

func NewReplayTransport(reader *CaptureReader) *ReplayTransport {
	return &ReplayTransport{reader: reader}
}

func (t *ReplayTransport) SendTo(buf []byte, _ net.Addr) (int, error) {
	return len(buf), nil
}

func (t *ReplayTransport) RecvFrom(buf []byte) (int, net.Addr, error) {
	for {
		entry, err := t.reader.ReadNext()
		if err != nil {
			return 0, nil, fmt.Errorf("transport: replay read: %w", err)
		}
		if entry == nil {
			return 0, nil, ErrEndOfCapture
		}
		if entry.Direction != Inbound {
			continue
		}
		n := copy(buf, entry.Data)
		return n, entry.Addr, nil
	}
}

func (t *ReplayTransport) Close() error { return t.reader.Close() }
