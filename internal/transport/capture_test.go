package transport

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaptureRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.cap")

	w, err := CreateCapture(path)
	require.NoError(t, err)

	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:9000")
	require.NoError(t, err)

	require.NoError(t, w.WriteEntry(Outbound, addr, []byte("hello")))
	require.NoError(t, w.WriteEntry(Inbound, addr, []byte("world")))
	require.NoError(t, w.Close())

	r, err := OpenCapture(path)
	require.NoError(t, err)
	defer r.Close()

	e1, err := r.ReadNext()
	require.NoError(t, err)
	require.NotNil(t, e1)
	require.Equal(t, Outbound, e1.Direction)
	require.Equal(t, []byte("hello"), e1.Data)

	e2, err := r.ReadNext()
	require.NoError(t, err)
	require.Equal(t, Inbound, e2.Direction)
	require.Equal(t, []byte("world"), e2.Data)

	e3, err := r.ReadNext()
	require.NoError(t, err)
	require.Nil(t, e3)
}

func TestReplayTransportOnlyDeliversInbound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.cap")
	addr, _ := net.ResolveUDPAddr("udp", "127.0.0.1:9000")

	w, err := CreateCapture(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteEntry(Outbound, addr, []byte("skip-me")))
	require.NoError(t, w.WriteEntry(Inbound, addr, []byte("deliver-me")))
	require.NoError(t, w.Close())

	r, err := OpenCapture(path)
	require.NoError(t, err)
	rt := NewReplayTransport(r)

	buf := make([]byte, 64)
	n, gotAddr, err := rt.RecvFrom(buf)
	require.NoError(t, err)
	require.Equal(t, "deliver-me", string(buf[:n]))
	require.Equal(t, addr.String(), gotAddr.String())

	n, err = rt.SendTo([]byte("anything"), addr)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	_, _, err = rt.RecvFrom(buf)
	require.ErrorIs(t, err, ErrEndOfCapture)
}
