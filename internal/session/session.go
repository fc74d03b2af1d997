// Package session implements the reliable, ordered message transport
// that rides over an unreliable datagram Transport: packet framing,
// checksums, the client-side handshake, sequencing/retransmission, and
// fragment reassembly. Payload semantics belong to the codec; this
// package only ever sees opaque message bytes.
package session

import (
	"encoding/binary"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/holtburger/holtburger/internal/messages"
	"github.com/holtburger/holtburger/internal/metrics"
	"github.com/holtburger/holtburger/internal/wire"
)

const (
	// reassemblyWindow bounds how long a partial fragmented message may
	// sit incomplete before it is discarded.
	reassemblyWindow = 15 * time.Second

	// ackEveryN packets triggers an ACK_SEQUENCE if the flush interval
	// hasn't already done so.
	ackEveryN = 8

	// ackFlushInterval is the "once per flush cycle" fallback for
	// emitting an ACK_SEQUENCE even under light traffic.
	ackFlushInterval = 2 * time.Second

	idleWindow  = 15 * time.Second
	deathWindow = 45 * time.Second

	maxPayloadPerFragment = wire.MaxPacketSize - wire.HeaderSize - wire.FragmentHeaderSize
)

// Transport is the minimal send/receive abstraction Session depends on;
// satisfied by internal/transport.Transport without importing it
// directly, so the codec/session layer stays free of net.Addr concerns
// beyond this interface.
type Transport interface {
	SendTo(buf []byte, addr net.Addr) (int, error)
	RecvFrom(buf []byte) (int, net.Addr, error)
}

// Session drives one peer connection: handshake, framing, sequencing,
// retransmission, and fragment reassembly.
type Session struct {
	Worker

	log       *log.Logger
	transport Transport
	peerAddr  net.Addr

	mu          sync.Mutex
	state       State
	clientID    uint16
	isaacIn     *Isaac
	isaacOut    *Isaac
	encrypted   bool
	outSeq      uint32
	outMsgSeq   uint32
	outMsgID    uint32
	expectedSeq uint32
	outOfOrder  map[uint32][]byte

	serverTime      float64
	serverTimeAt    time.Time
	lastPacketAt    time.Time
	ackedSinceFlush int
	lastAckFlush    time.Time

	retransmit *retransmitBuffer
	reassembly *reassembler
	dup        *dupFilter

	messages chan []byte

	// Metrics is optional; when set, Session increments its counters
	// as it sends, receives, retransmits, and reassembles packets.
	Metrics *metrics.Registry
}

// NewSession constructs a Session over transport, addressed initially at
// peerAddr. Call Connect to run the handshake before sending ordinary
// messages.
func NewSession(transport Transport, peerAddr net.Addr) *Session {
	return &Session{
		log:        log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "session"}),
		transport:  transport,
		peerAddr:   peerAddr,
		state:      Disconnected,
		outOfOrder: make(map[uint32][]byte),
		retransmit: newRetransmitBuffer(),
		reassembly: newReassembler(reassemblyWindow),
		dup:        newDupFilter(),
		messages:   make(chan []byte, 64),
		lastAckFlush: time.Now(),
	}
}

// State returns the current handshake/connectivity state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	prev := s.state
	s.state = st
	s.mu.Unlock()
	if prev != st {
		s.log.Debugf("state %s -> %s", prev, st)
	}
}

// Messages delivers reassembled, in-order message bodies.
func (s *Session) Messages() <-chan []byte {
	return s.messages
}

// Connect runs the client-side handshake synchronously: LOGIN_REQUEST,
// await CONNECT_REQUEST, send CONNECT_RESPONSE, race-delay, Connected.
func (s *Session) Connect(account, password, clientVersion string) error {
	s.setState(HelloSent)

	payload := messages.BuildLoginPayload(account, password, uint32(time.Now().Unix()), clientVersion)
	hdr := wire.Header{
		Sequence:  0,
		Flags:     wire.FlagLoginRequest,
		BodySize:  uint16(len(payload)),
		Iteration: 1,
	}
	if err := s.sendRaw(hdr, payload); err != nil {
		return fmt.Errorf("session: sending login request: %w", err)
	}

	s.setState(AwaitingConnectResponse)

	buf := make([]byte, wire.MaxPacketSize)
	n, _, err := s.transport.RecvFrom(buf)
	if err != nil {
		return fmt.Errorf("session: awaiting connect request: %w", err)
	}
	hdr2, err := wire.DecodeHeader(buf[:n])
	if err != nil {
		return fmt.Errorf("session: decoding connect request header: %w", err)
	}
	if !hdr2.Flags.Has(wire.FlagConnectRequest) {
		return fmt.Errorf("session: expected CONNECT_REQUEST, got flags 0x%x", hdr2.Flags)
	}
	cr, err := wire.DecodeConnectRequestData(buf[wire.HeaderSize:n])
	if err != nil {
		return fmt.Errorf("session: decoding connect request payload: %w", err)
	}

	s.mu.Lock()
	s.clientID = cr.ClientID
	s.isaacIn = NewIsaac(cr.ServerSeed)
	s.isaacOut = NewIsaac(cr.ClientSeed)
	s.encrypted = true
	s.serverTime = cr.ServerTime
	s.serverTimeAt = time.Now()
	s.lastPacketAt = time.Now()
	s.mu.Unlock()

	respHdr := wire.Header{
		Sequence:     0,
		Flags:        wire.FlagConnectResponse,
		ConnectionID: s.clientID,
		Iteration:    1,
	}
	cookie := make([]byte, 8)
	binary.LittleEndian.PutUint64(cookie, cr.Cookie)
	if err := s.sendRaw(respHdr, cookie); err != nil {
		return fmt.Errorf("session: sending connect response: %w", err)
	}

	time.Sleep(wire.AceHandshakeRaceDelayMS * time.Millisecond)
	s.setState(Connected)
	return nil
}

// Run starts the background receive loop. Stop via Worker.Halt.
func (s *Session) Run() {
	s.Go(s.recvLoop)
	s.Go(s.ackFlushLoop)
}

func (s *Session) recvLoop() {
	buf := make([]byte, wire.MaxPacketSize)
	for {
		select {
		case <-s.HaltCh():
			return
		default:
		}
		n, addr, err := s.transport.RecvFrom(buf)
		if err != nil {
			s.log.Debugf("recv error: %v", err)
			continue
		}
		s.peerAddr = addr
		s.onDatagram(append([]byte(nil), buf[:n]...))
	}
}

func (s *Session) ackFlushLoop() {
	t := time.NewTicker(ackFlushInterval)
	defer t.Stop()
	for {
		select {
		case <-s.HaltCh():
			return
		case <-t.C:
			s.mu.Lock()
			due := s.ackedSinceFlush > 0
			s.mu.Unlock()
			if due {
				s.sendAck()
			}
			if dropped := s.reassembly.sweep(time.Now()); dropped > 0 {
				s.log.Debugf("reassembly: swept %d expired partial message(s)", dropped)
			}
			s.checkKeepAlive()
		}
	}
}

func (s *Session) checkKeepAlive() {
	s.mu.Lock()
	last := s.lastPacketAt
	s.mu.Unlock()
	if last.IsZero() {
		return
	}
	idle := time.Since(last)
	switch {
	case idle > deathWindow:
		s.log.Warnf("death window exceeded (%s idle), disconnecting", idle)
		s.setState(Disconnected)
	case idle > idleWindow:
		hdr := wire.Header{Sequence: s.nextOutSeq(), ConnectionID: s.clientID}
		if err := s.sendRaw(hdr, nil); err != nil {
			s.log.Debugf("keep-alive ping failed: %v", err)
		}
	}
}

// onDatagram decodes and dispatches one received packet.
func (s *Session) onDatagram(buf []byte) {
	hdr, err := wire.DecodeHeader(buf)
	if err != nil {
		s.log.Debugf("truncated header: %v", err)
		return
	}
	body := buf[wire.HeaderSize:]

	if !s.verifyChecksum(hdr, body) {
		s.log.Debugf("checksum mismatch on sequence %d", hdr.Sequence)
		if s.Metrics != nil {
			s.Metrics.ChecksumFailures.Inc()
		}
		return
	}
	if s.Metrics != nil {
		s.Metrics.PacketsReceived.Inc()
	}

	s.mu.Lock()
	s.lastPacketAt = time.Now()
	s.mu.Unlock()

	blocks, rest, err := wire.DecodeBlocks(hdr.Flags, body)
	if err != nil {
		s.log.Debugf("truncated blocks: %v", err)
		return
	}
	if blocks.TimeSync != nil {
		s.mu.Lock()
		s.serverTime = *blocks.TimeSync
		s.serverTimeAt = time.Now()
		s.mu.Unlock()
	}
	if blocks.AckSequence != nil {
		s.retransmit.evictThrough(*blocks.AckSequence)
	}
	if blocks.EchoRequest != nil {
		s.replyEcho(*blocks.EchoRequest)
	}

	switch {
	case hdr.Flags.Has(wire.FlagConnectRequest):
		return
	case hdr.Flags.Has(wire.FlagRequestRetransmit):
		s.handleRetransmitRequest(rest)
		return
	case hdr.Flags.Has(wire.FlagRejectRetransmit):
		s.handleRejectRetransmit(rest)
		return
	case hdr.Flags.Has(wire.FlagDisconnect):
		s.setState(Disconnected)
		return
	}

	if hdr.Flags.Has(wire.FlagBlobFragments) {
		s.handleFragments(hdr, rest)
		return
	}
	if len(rest) == 0 {
		return
	}
	s.handleSequenced(hdr, rest)
}

func (s *Session) handleSequenced(hdr wire.Header, body []byte) {
	s.mu.Lock()
	expected := s.expectedSeq
	s.mu.Unlock()

	// A sequence number ahead of expected that dup has already recorded is
	// already sitting in outOfOrder, so this copy has nothing left to do.
	// Packets at or below expected are left to the window check below, so
	// a filter false positive never drops the next in-order packet.
	if hdr.Sequence > expected && s.dup.seen(hdr.Sequence) {
		return
	}

	switch {
	case hdr.Sequence < expected:
		return
	case hdr.Sequence == expected:
		s.deliver(body)
		s.advanceExpected()
	default:
		s.mu.Lock()
		s.outOfOrder[hdr.Sequence] = append([]byte(nil), body...)
		s.mu.Unlock()
		s.requestRetransmit(expected, hdr.Sequence)
	}
	s.countAck()
}

func (s *Session) advanceExpected() {
	s.mu.Lock()
	s.expectedSeq++
	for {
		buf, ok := s.outOfOrder[s.expectedSeq]
		if !ok {
			break
		}
		delete(s.outOfOrder, s.expectedSeq)
		s.mu.Unlock()
		s.deliver(buf)
		s.mu.Lock()
		s.expectedSeq++
	}
	s.mu.Unlock()
}

func (s *Session) deliver(body []byte) {
	if body == nil {
		return
	}
	select {
	case s.messages <- body:
	default:
		s.log.Warnf("message channel full, dropping delivered payload")
	}
}

func (s *Session) handleFragments(hdr wire.Header, buf []byte) {
	var full []byte
	for len(buf) > 0 {
		fhdr, err := wire.DecodeFragmentHeader(buf)
		if err != nil {
			s.log.Debugf("truncated fragment header: %v", err)
			break
		}
		buf = buf[wire.FragmentHeaderSize:]
		n := int(fhdr.FragmentTotalSize)
		if n > len(buf) {
			n = len(buf)
		}
		body := buf[:n]
		buf = buf[n:]
		if assembled, ok := s.reassembly.addFragment(fhdr, append([]byte(nil), body...), time.Now()); ok {
			if s.Metrics != nil {
				s.Metrics.FragmentsReassembled.Inc()
			}
			full = assembled
		}
	}
	// Every fragment packet takes one header-sequence slot; one that
	// completes no message passes a nil body, which deliver skips.
	s.handleSequenced(hdr, full)
}

func (s *Session) countAck() {
	s.mu.Lock()
	s.ackedSinceFlush++
	due := s.ackedSinceFlush >= ackEveryN
	s.mu.Unlock()
	if due {
		s.sendAck()
	}
}

func (s *Session) sendAck() {
	s.mu.Lock()
	ack := s.expectedSeq
	if ack > 0 {
		ack--
	}
	s.ackedSinceFlush = 0
	s.mu.Unlock()

	hdr := wire.Header{Sequence: s.nextOutSeq(), Flags: wire.FlagAckSequence, ConnectionID: s.clientID}
	blocks := wire.Blocks{AckSequence: &ack}
	payload := blocks.Encode(nil)
	hdr.BodySize = uint16(len(payload))
	if err := s.sendRaw(hdr, payload); err != nil {
		s.log.Debugf("ack send failed: %v", err)
	}
}

func (s *Session) requestRetransmit(from, to uint32) {
	hdr := wire.Header{Sequence: s.nextOutSeq(), Flags: wire.FlagRequestRetransmit, ConnectionID: s.clientID}
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint32(payload[0:4], from)
	binary.LittleEndian.PutUint32(payload[4:8], to)
	hdr.BodySize = uint16(len(payload))
	if err := s.sendRaw(hdr, payload); err != nil {
		s.log.Debugf("request-retransmit send failed: %v", err)
	}
}

func (s *Session) handleRetransmitRequest(body []byte) {
	for i := 0; i+4 <= len(body); i += 4 {
		seq := binary.LittleEndian.Uint32(body[i : i+4])
		packet, ok := s.retransmit.get(seq)
		if !ok {
			continue
		}
		resent := append([]byte(nil), packet...)
		hdr, err := wire.DecodeHeader(resent)
		if err != nil {
			continue
		}
		hdr.Flags |= wire.FlagRetransmission
		hdr.Encode(resent[:0])
		if _, err := s.transport.SendTo(resent, s.peerAddr); err != nil {
			s.log.Debugf("retransmit resend failed for seq %d: %v", seq, err)
			continue
		}
		if s.Metrics != nil {
			s.Metrics.PacketsRetransmitted.Inc()
		}
	}
}

func (s *Session) handleRejectRetransmit(body []byte) {
	for i := 0; i+4 <= len(body); i += 4 {
		seq := binary.LittleEndian.Uint32(body[i : i+4])
		s.retransmit.evict(seq)
		s.mu.Lock()
		if seq >= s.expectedSeq {
			s.expectedSeq = seq + 1
		}
		s.mu.Unlock()
	}
}

func (s *Session) replyEcho(sample float32) {
	hdr := wire.Header{Sequence: s.nextOutSeq(), Flags: wire.FlagEchoResponse, ConnectionID: s.clientID}
	blocks := wire.Blocks{EchoResponse: &sample}
	payload := blocks.Encode(nil)
	hdr.BodySize = uint16(len(payload))
	_ = s.sendRaw(hdr, payload)
}

// CurrentServerTime returns the server's clock, extrapolated from the
// last TIME_SYNC sample plus locally elapsed time.
func (s *Session) CurrentServerTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.serverTimeAt.IsZero() {
		return s.serverTime
	}
	return s.serverTime + time.Since(s.serverTimeAt).Seconds()
}

func (s *Session) nextOutSeq() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.outSeq
	s.outSeq++
	return seq
}

// nextOutMsgSeq draws from the fragment message-sequence counter, kept
// independent of the per-packet header sequence counter per spec.
func (s *Session) nextOutMsgSeq() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.outMsgSeq
	s.outMsgSeq++
	return seq
}

// Disconnect sends a header-only DISCONNECT packet to the peer. It does
// not stop the background loops; call Halt/Wait for that.
func (s *Session) Disconnect() error {
	hdr := wire.Header{Sequence: s.nextOutSeq(), Flags: wire.FlagDisconnect, ConnectionID: s.clientID}
	return s.sendRaw(hdr, nil)
}

// SendMessage packetizes payload, splitting into fragments if it
// exceeds one datagram's capacity, and sends it to the peer.
func (s *Session) SendMessage(payload []byte) error {
	if len(payload) <= maxPayloadPerFragment {
		hdr := wire.Header{Sequence: s.nextOutSeq(), ConnectionID: s.clientID, BodySize: uint16(len(payload))}
		return s.sendRaw(hdr, payload)
	}
	return s.sendFragmented(payload)
}

func (s *Session) sendFragmented(payload []byte) error {
	s.mu.Lock()
	msgID := s.outMsgID
	s.outMsgID++
	s.mu.Unlock()

	total := len(payload)
	count := (total + maxPayloadPerFragment - 1) / maxPayloadPerFragment
	msgSeq := s.nextOutMsgSeq()

	for idx := 0; idx < count; idx++ {
		start := idx * maxPayloadPerFragment
		end := start + maxPayloadPerFragment
		if end > total {
			end = total
		}
		chunk := payload[start:end]

		fhdr := wire.FragmentHeader{
			MessageSequence:   msgSeq,
			MessageID:         msgID,
			FragmentCount:     uint16(count),
			FragmentTotalSize: uint16(len(chunk)),
			FragmentIndex:     uint16(idx),
			QueueID:           wire.QueueGeneral,
		}
		body := fhdr.Encode(nil)
		body = append(body, chunk...)

		hdr := wire.Header{
			Sequence:     s.nextOutSeq(),
			Flags:        wire.FlagBlobFragments,
			ConnectionID: s.clientID,
			BodySize:     uint16(len(body)),
		}
		if err := s.sendRaw(hdr, body); err != nil {
			return fmt.Errorf("session: sending fragment %d/%d: %w", idx+1, count, err)
		}
	}
	return nil
}

// sendRaw encodes hdr+payload, computes the checksum (xoring it with
// the outbound ISAAC word once encryption is active), stores the
// packet for retransmission, and sends it.
//
// The header carries exactly one checksum field (wire.Header.Checksum),
// so "header checksum" and "payload checksum" name the same 32-bit
// value computed over header-with-sentinel plus payload together; there
// is no second field to hold a checksum over the payload alone. The
// ISAAC xor is applied to that single value, not to two separate ones.
func (s *Session) sendRaw(hdr wire.Header, payload []byte) error {
	s.mu.Lock()
	encrypted := s.encrypted
	var isaacWord uint32
	if encrypted {
		isaacWord = s.isaacOut.Next()
	}
	s.mu.Unlock()

	if encrypted {
		hdr.Flags |= wire.FlagEncryptedChecksum
	}
	hdr.Checksum = wire.ChecksumSeed
	packet := hdr.Encode(nil)
	packet = append(packet, payload...)

	checksum := Hash32(packet)
	if encrypted {
		checksum ^= isaacWord
	}
	hdr.Checksum = checksum
	packet = hdr.Encode(packet[:0])
	packet = append(packet, payload...)

	s.retransmit.store(hdr.Sequence, packet)

	_, err := s.transport.SendTo(packet, s.peerAddr)
	if err == nil && s.Metrics != nil {
		s.Metrics.PacketsSent.Inc()
	}
	return err
}

func (s *Session) verifyChecksum(hdr wire.Header, body []byte) bool {
	s.mu.Lock()
	encrypted := hdr.Flags.Has(wire.FlagEncryptedChecksum)
	var isaacWord uint32
	if encrypted && s.isaacIn != nil {
		isaacWord = s.isaacIn.Next()
	}
	s.mu.Unlock()

	check := hdr
	check.Checksum = wire.ChecksumSeed
	packet := check.Encode(nil)
	packet = append(packet, body...)
	want := Hash32(packet)
	if encrypted {
		want ^= isaacWord
	}
	return want == hdr.Checksum
}
