package session

import (
	"time"

	"gitlab.com/yawning/avl.git"

	"github.com/holtburger/holtburger/internal/wire"
)

// reassemblyKey identifies one logical fragmented message.
type reassemblyKey struct {
	messageID       uint32
	messageSequence uint32
}

type pendingMessage struct {
	key        reassemblyKey
	count      uint16
	totalSize  uint16
	queueID    uint16
	fragments  map[uint16][]byte
	firstSeen  time.Time
	expiryNode *avl.Node
}

func (m *pendingMessage) complete() bool {
	return len(m.fragments) == int(m.count)
}

func (m *pendingMessage) assemble() []byte {
	out := make([]byte, 0, m.totalSize)
	for i := uint16(0); i < m.count; i++ {
		out = append(out, m.fragments[i]...)
	}
	return out
}

// reassembler tracks in-flight fragmented messages keyed by
// (message_id, message_sequence) and sweeps partial sets that have sat
// longer than a bounded window, per spec.md's fragment-reassembly rules.
// The pending set is indexed twice: a plain map for O(1) lookup when a
// fragment arrives, and an AVL tree ordered by arrival time so sweeping
// for expired entries never has to scan the whole map, grounded in the
// same avl.Tree-as-ordered-expiry-index pattern the teacher's server
// decoy package uses for SURB ETA sweeps.
type reassembler struct {
	window  time.Duration
	pending map[reassemblyKey]*pendingMessage
	expiry  *avl.Tree
}

func newReassembler(window time.Duration) *reassembler {
	return &reassembler{
		window:  window,
		pending: make(map[reassemblyKey]*pendingMessage),
		expiry: avl.New(func(a, b interface{}) int {
			ma, mb := a.(*pendingMessage), b.(*pendingMessage)
			switch {
			case ma.firstSeen.Before(mb.firstSeen):
				return -1
			case ma.firstSeen.After(mb.firstSeen):
				return 1
			case ma.key.messageID < mb.key.messageID:
				return -1
			case ma.key.messageID > mb.key.messageID:
				return 1
			case ma.key.messageSequence < mb.key.messageSequence:
				return -1
			case ma.key.messageSequence > mb.key.messageSequence:
				return 1
			default:
				return 0
			}
		}),
	}
}

// addFragment records one fragment. If it completes the message, the
// assembled payload is returned and the pending entry is removed.
func (r *reassembler) addFragment(hdr wire.FragmentHeader, body []byte, now time.Time) ([]byte, bool) {
	key := reassemblyKey{messageID: hdr.MessageID, messageSequence: hdr.MessageSequence}
	m, ok := r.pending[key]
	if !ok {
		m = &pendingMessage{
			key:       key,
			count:     hdr.FragmentCount,
			totalSize: hdr.FragmentTotalSize,
			queueID:   hdr.QueueID,
			fragments: make(map[uint16][]byte, hdr.FragmentCount),
			firstSeen: now,
		}
		m.expiryNode = r.expiry.Insert(m)
		r.pending[key] = m
	}
	m.fragments[hdr.FragmentIndex] = body

	if !m.complete() {
		return nil, false
	}
	delete(r.pending, key)
	r.expiry.Remove(m.expiryNode)
	return m.assemble(), true
}

// sweep discards any partial message older than the reassembly window
// and returns how many were dropped.
func (r *reassembler) sweep(now time.Time) int {
	cutoff := now.Add(-r.window)
	dropped := 0
	for {
		iter := r.expiry.Iterator(avl.Forward)
		node := iter.First()
		if node == nil {
			break
		}
		m := node.Value.(*pendingMessage)
		if m.firstSeen.After(cutoff) {
			break
		}
		delete(r.pending, m.key)
		r.expiry.Remove(node)
		dropped++
	}
	return dropped
}

func (r *reassembler) len() int {
	return len(r.pending)
}
