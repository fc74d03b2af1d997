package session

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeAddr string

func (a fakeAddr) Network() string { return "fake" }
func (a fakeAddr) String() string  { return string(a) }

// capturingTransport records every SendTo call; RecvFrom is unused by
// these tests since they drive Session.onDatagram directly.
type capturingTransport struct {
	sent [][]byte
}

func (t *capturingTransport) SendTo(buf []byte, _ net.Addr) (int, error) {
	t.sent = append(t.sent, append([]byte(nil), buf...))
	return len(buf), nil
}

func (t *capturingTransport) RecvFrom(_ []byte) (int, net.Addr, error) {
	select {}
}

func TestSessionSendMessageSmallPayload(t *testing.T) {
	tr := &capturingTransport{}
	s := NewSession(tr, fakeAddr("peer:1"))

	require.NoError(t, s.SendMessage([]byte("hello world")))
	require.Len(t, tr.sent, 1)

	recv := NewSession(&capturingTransport{}, fakeAddr("me:1"))
	recv.onDatagram(tr.sent[0])

	select {
	case got := <-recv.Messages():
		require.Equal(t, "hello world", string(got))
	default:
		t.Fatal("expected a delivered message")
	}
}

func TestSessionFragmentsAndReassemblesLargePayload(t *testing.T) {
	tr := &capturingTransport{}
	s := NewSession(tr, fakeAddr("peer:1"))

	payload := make([]byte, maxPayloadPerFragment*2+37)
	for i := range payload {
		payload[i] = byte(i)
	}
	require.NoError(t, s.SendMessage(payload))
	require.Greater(t, len(tr.sent), 1)

	recv := NewSession(&capturingTransport{}, fakeAddr("me:1"))
	for _, pkt := range tr.sent {
		recv.onDatagram(pkt)
	}

	select {
	case got := <-recv.Messages():
		require.Equal(t, payload, got)
	default:
		t.Fatal("expected the reassembled message to be delivered")
	}
}

func TestSessionDropsDuplicateSequence(t *testing.T) {
	tr := &capturingTransport{}
	s := NewSession(tr, fakeAddr("peer:1"))
	require.NoError(t, s.SendMessage([]byte("one")))
	require.NoError(t, s.SendMessage([]byte("two")))

	recv := NewSession(&capturingTransport{}, fakeAddr("me:1"))
	recv.onDatagram(tr.sent[0])
	<-recv.Messages()
	recv.onDatagram(tr.sent[1])
	<-recv.Messages()

	// Replaying the first packet again must not re-deliver it.
	recv.onDatagram(tr.sent[0])
	select {
	case got := <-recv.Messages():
		t.Fatalf("unexpected redelivery: %q", got)
	default:
	}
}

func TestSessionOutOfOrderBuffersAndRequestsRetransmit(t *testing.T) {
	tr := &capturingTransport{}
	s := NewSession(tr, fakeAddr("peer:1"))
	require.NoError(t, s.SendMessage([]byte("one")))
	require.NoError(t, s.SendMessage([]byte("two")))
	require.NoError(t, s.SendMessage([]byte("three")))

	recvTr := &capturingTransport{}
	recv := NewSession(recvTr, fakeAddr("me:1"))

	// Deliver packet 2 ("two") before packet 1 ("one").
	recv.onDatagram(tr.sent[1])
	select {
	case got := <-recv.Messages():
		t.Fatalf("out-of-order packet must not be delivered yet: %q", got)
	default:
	}
	require.NotEmpty(t, recvTr.sent, "expected a REQUEST_RETRANSMIT to have been sent")

	recv.onDatagram(tr.sent[0])
	got1 := <-recv.Messages()
	require.Equal(t, "one", string(got1))
	got2 := <-recv.Messages()
	require.Equal(t, "two", string(got2))

	recv.onDatagram(tr.sent[2])
	got3 := <-recv.Messages()
	require.Equal(t, "three", string(got3))
}
