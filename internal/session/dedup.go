package session

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/yawning/bloom"
)

// dupFilterCapacity bounds how many sequence numbers a filter generation
// records before it's rotated. Sized well above the retransmit window so a
// genuine retransmit is still caught, while keeping the false-positive rate
// close to the nominal 1% over a session far longer than 4096 packets.
const dupFilterCapacity = 4096

// dupFilter recognizes sequence numbers already recorded this session.
// handleSequenced consults it only for packets ahead of the expected
// sequence, so a second copy of a packet already buffered out of order is
// neither buffered again nor re-triggers a retransmit request; packets at
// or below the expected sequence are decided by the window. The filter is
// rotated every dupFilterCapacity insertions, since a bloom filter's bits
// only ever get set, never cleared, and an unrotated one would eventually
// saturate and start false-positiving on sequence numbers it never saw.
type dupFilter struct {
	f     *bloom.Filter
	count int
}

func newDupFilter() *dupFilter {
	return &dupFilter{f: mustNewBloomFilter()}
}

func mustNewBloomFilter() *bloom.Filter {
	f, err := bloom.New(rand.Reader, dupFilterCapacity, 0.01)
	if err != nil {
		panic(fmt.Sprintf("session: initializing dedup filter: %v", err))
	}
	return f
}

// seen reports whether sequence was already recorded, and records it.
func (d *dupFilter) seen(sequence uint32) bool {
	var key [4]byte
	binary.BigEndian.PutUint32(key[:], sequence)
	wasSet := d.f.TestAndSet(key[:])
	d.count++
	if d.count >= dupFilterCapacity {
		d.f = mustNewBloomFilter()
		d.count = 0
	}
	return wasSet
}
