package world

import "math"

// WorldPosition is a landblock-relative location: a 4-byte landblock id
// (high 2 bytes = landblock, low 2 bytes = cell) and an offset within it.
type WorldPosition struct {
	LandblockID uint32
	X, Y, Z     float32
}

// Orientation is a unit quaternion. One axis may be omitted on the wire
// when PositionPack.Flags marks it absent; ReadOrientation reconstructs it
// from the others assuming unit magnitude.
type Orientation struct {
	W, X, Y, Z float32
}

// PositionPack is the position block embedded in UpdatePosition and
// movement-event messages: flags, the base position, an orientation
// quaternion with optionally-omitted axes, optional velocity and
// placement id, and two trailing sequence counters that are always
// present regardless of flags.
type PositionPack struct {
	Flags       UpdatePositionFlag
	Pos         WorldPosition
	Orientation Orientation
	Velocity    [3]float32
	HasVelocity bool
	PlacementID uint32
	HasPlacement bool
	Sequences   [2]uint32
}

// Unpack decodes a PositionPack from data starting at *offset.
func (p *PositionPack) Unpack(data []byte, offset *int) bool {
	flagsRaw, ok := readU32(data, offset)
	if !ok {
		return false
	}
	flags := UpdatePositionFlag(flagsRaw)
	p.Flags = flags

	landblock, ok := readU32(data, offset)
	if !ok {
		return false
	}
	x, ok := readF32(data, offset)
	if !ok {
		return false
	}
	y, ok := readF32(data, offset)
	if !ok {
		return false
	}
	z, ok := readF32(data, offset)
	if !ok {
		return false
	}
	p.Pos = WorldPosition{LandblockID: landblock, X: x, Y: y, Z: z}

	type axis struct {
		missing bool
		bit     UpdatePositionFlag
		val     *float32
	}
	axes := []axis{
		{bit: UpdatePosOrientationHasNoW, val: &p.Orientation.W},
		{bit: UpdatePosOrientationHasNoX, val: &p.Orientation.X},
		{bit: UpdatePosOrientationHasNoY, val: &p.Orientation.Y},
		{bit: UpdatePosOrientationHasNoZ, val: &p.Orientation.Z},
	}
	var sumSquares float32
	var missing []*float32
	for i := range axes {
		if flags.Has(axes[i].bit) {
			missing = append(missing, axes[i].val)
			continue
		}
		v, ok := readF32(data, offset)
		if !ok {
			return false
		}
		*axes[i].val = v
		sumSquares += v * v
	}
	if len(missing) > 0 {
		// A quaternion and its negation represent the same rotation, so a
		// sender omitting one axis can always pick the representation where
		// that axis is non-negative before dropping it — that's the "known
		// sign" the wire format relies on, and it's why reconstruction here
		// never has to guess: the omitted axis is recovered as the
		// non-negative root that restores unit magnitude. This is exact
		// for the conventional single-omitted-axis case. Flags that omit
		// more than one axis at once have no such sign freedom (the
		// magnitude constraint alone can't separate multiple unknowns), so
		// that combination is left as an even, non-negative split of the
		// residual; no real sender is known to produce it.
		residual := float32(1.0) - sumSquares
		if residual < 0 {
			residual = 0
		}
		share := float32(math.Sqrt(float64(residual) / float64(len(missing))))
		for _, m := range missing {
			*m = share
		}
	}

	if flags.Has(UpdatePosHasVelocity) {
		for i := 0; i < 3; i++ {
			v, ok := readF32(data, offset)
			if !ok {
				return false
			}
			p.Velocity[i] = v
		}
		p.HasVelocity = true
	}

	if flags.Has(UpdatePosHasPlacementID) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		p.PlacementID = v
		p.HasPlacement = true
	}

	seq0, ok := readU32(data, offset)
	if !ok {
		return false
	}
	seq1, ok := readU32(data, offset)
	if !ok {
		return false
	}
	p.Sequences = [2]uint32{seq0, seq1}
	return true
}

// Pack appends the wire form of p to buf.
func (p PositionPack) Pack(buf *[]byte) {
	appendU32(buf, uint32(p.Flags))
	appendU32(buf, p.Pos.LandblockID)
	appendF32(buf, p.Pos.X)
	appendF32(buf, p.Pos.Y)
	appendF32(buf, p.Pos.Z)

	if !p.Flags.Has(UpdatePosOrientationHasNoW) {
		appendF32(buf, p.Orientation.W)
	}
	if !p.Flags.Has(UpdatePosOrientationHasNoX) {
		appendF32(buf, p.Orientation.X)
	}
	if !p.Flags.Has(UpdatePosOrientationHasNoY) {
		appendF32(buf, p.Orientation.Y)
	}
	if !p.Flags.Has(UpdatePosOrientationHasNoZ) {
		appendF32(buf, p.Orientation.Z)
	}

	if p.Flags.Has(UpdatePosHasVelocity) {
		for _, v := range p.Velocity {
			appendF32(buf, v)
		}
	}
	if p.Flags.Has(UpdatePosHasPlacementID) {
		appendU32(buf, p.PlacementID)
	}
	appendU32(buf, p.Sequences[0])
	appendU32(buf, p.Sequences[1])
}

func readU32(data []byte, offset *int) (uint32, bool) {
	if *offset+4 > len(data) {
		return 0, false
	}
	v := uint32(data[*offset]) | uint32(data[*offset+1])<<8 | uint32(data[*offset+2])<<16 | uint32(data[*offset+3])<<24
	*offset += 4
	return v, true
}

func readF32(data []byte, offset *int) (float32, bool) {
	v, ok := readU32(data, offset)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(v), true
}

func appendU32(buf *[]byte, v uint32) {
	*buf = append(*buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendF32(buf *[]byte, v float32) {
	appendU32(buf, math.Float32bits(v))
}
