package session

// Isaac is the per-direction keystream generator seeded at the end of the
// handshake. It is used exclusively to xor packet-checksum words; no
// payload bytes are ever encrypted with it. This is a bespoke ACE-style
// ISAAC variant (seed loaded directly into a/b/c before the first
// scramble) rather than the textbook algorithm, so it is ported directly
// rather than sourced from a general-purpose ISAAC library.
type Isaac struct {
	offset  int
	a, b, c uint32
	mm      [256]uint32
	randRsl [256]uint32
}

// NewIsaac seeds a generator from a single 32-bit seed.
func NewIsaac(seed uint32) *Isaac {
	i := &Isaac{offset: 255}
	i.initialize(seed)
	return i
}

// Next draws one 32-bit word from the keystream.
func (i *Isaac) Next() uint32 {
	val := i.randRsl[i.offset]
	if i.offset > 0 {
		i.offset--
	} else {
		i.scramble()
		i.offset = 255
	}
	return val
}

func (i *Isaac) initialize(seed uint32) {
	var abcdefgh [8]uint32
	for k := range abcdefgh {
		abcdefgh[k] = 0x9E3779B9
	}

	for n := 0; n < 4; n++ {
		shuffle(&abcdefgh)
	}

	for pass := 0; pass < 2; pass++ {
		for j := 0; j < 256; j += 8 {
			for k := range abcdefgh {
				if pass < 1 {
					abcdefgh[k] += i.randRsl[j+k]
				} else {
					abcdefgh[k] += i.mm[j+k]
				}
			}
			shuffle(&abcdefgh)
			copy(i.mm[j:j+8], abcdefgh[:])
		}
	}

	// ACE specific: a, b, c set to seed, then scramble immediately.
	i.a = seed
	i.b = seed
	i.c = seed
	i.scramble()
}

func shuffle(r *[8]uint32) {
	r[0] ^= r[1] << 11
	r[3] += r[0]
	r[1] += r[2]
	r[1] ^= r[2] >> 2
	r[4] += r[1]
	r[2] += r[3]
	r[2] ^= r[3] << 8
	r[5] += r[2]
	r[3] += r[4]
	r[3] ^= r[4] >> 16
	r[6] += r[3]
	r[4] += r[5]
	r[4] ^= r[5] << 10
	r[7] += r[4]
	r[5] += r[6]
	r[5] ^= r[6] >> 4
	r[0] += r[5]
	r[6] += r[7]
	r[6] ^= r[7] << 8
	r[1] += r[6]
	r[7] += r[0]
	r[7] ^= r[0] >> 9
	r[2] += r[7]
	r[0] += r[1]
}

func (i *Isaac) scramble() {
	i.c++
	i.b += i.c

	for n := 0; n < 256; n++ {
		x := i.mm[n]
		switch n & 3 {
		case 0:
			i.a ^= i.a << 13
		case 1:
			i.a ^= i.a >> 6
		case 2:
			i.a ^= i.a << 2
		case 3:
			i.a ^= i.a >> 16
		}
		i.a += i.mm[(n+128)&0xFF]
		y := i.mm[(x>>2)&0xFF] + i.a + i.b
		i.mm[n] = y
		i.b = i.mm[(y>>10)&0xFF] + x
		i.randRsl[n] = i.b
	}
}
