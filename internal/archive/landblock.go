package archive

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/holtburger/holtburger/internal/world"
)

// Frame is a model placement: an origin and an orientation quaternion,
// stored on disk as (x, y, z) then (w, x, y, z).
type Frame struct {
	Origin      world.Vector3
	Orientation world.Orientation
}

func readFrame(data []byte, offset *int) (Frame, error) {
	if *offset+28 > len(data) {
		return Frame{}, fmt.Errorf("archive: truncated frame")
	}
	le := binary.LittleEndian
	f32 := func(o int) float32 { return math.Float32frombits(le.Uint32(data[o : o+4])) }
	f := Frame{
		Origin: world.Vector3{
			X: f32(*offset), Y: f32(*offset + 4), Z: f32(*offset + 8),
		},
		Orientation: world.Orientation{
			W: f32(*offset + 12), X: f32(*offset + 16), Y: f32(*offset + 20), Z: f32(*offset + 24),
		},
	}
	*offset += 28
	return f, nil
}

// Stab anchors a static object instance within a landblock to a model
// id and placement frame.
type Stab struct {
	ID    uint32
	Frame Frame
}

// Portal links one building leaf to a neighboring cell through an
// optional list of visibility "stab" indices.
type Portal struct {
	Flags         uint16
	OtherCellID   uint16
	OtherPortalID uint16
	Stabs         []uint16
}

// BuildInfo is one building's static geometry placement within a
// landblock, plus its portal connections to other cells.
type BuildInfo struct {
	ModelID  uint32
	Frame    Frame
	NumLeaves uint32
	Portals  []Portal
}

// CellLandblock is the terrain tile for one landblock: a per-vertex
// terrain type table and height map over a 9x9 grid.
type CellLandblock struct {
	ID         uint32
	HasObjects bool
	Terrain    [81]uint16
	Height     [81]uint8
}

// GetHeight returns the world-space height at grid vertex (x, y), x and
// y each in [0, 8]. The on-disk height unit is 2 world units.
func (l CellLandblock) GetHeight(x, y int) float32 {
	if x > 8 || y > 8 || x < 0 || y < 0 {
		return 0
	}
	return float32(l.Height[x*9+y]) * 2.0
}

// UnpackCellLandblock decodes a terrain-tile DAT entry.
func UnpackCellLandblock(data []byte) (CellLandblock, error) {
	const fixedSize = 4 + 4 + 81*2 + 81
	if len(data) < fixedSize {
		return CellLandblock{}, fmt.Errorf("archive: truncated cell landblock")
	}
	le := binary.LittleEndian
	var lb CellLandblock
	lb.ID = le.Uint32(data[0:4])
	lb.HasObjects = le.Uint32(data[4:8]) != 0
	pos := 8
	for i := 0; i < 81; i++ {
		lb.Terrain[i] = le.Uint16(data[pos : pos+2])
		pos += 2
	}
	for i := 0; i < 81; i++ {
		lb.Height[i] = data[pos]
		pos++
	}
	return lb, nil
}

// LandblockInfo is the static-object manifest for one landblock: the
// scenery stabs, buildings, and (if present) a restriction table mapping
// house ids to allegiance ids.
type LandblockInfo struct {
	ID                uint32
	NumCells          uint32
	Objects           []Stab
	PackMask          uint16
	Buildings         []BuildInfo
	RestrictionTables map[uint32]uint32
}

// UnpackLandblockInfo decodes a landblock-info DAT entry.
func UnpackLandblockInfo(data []byte) (LandblockInfo, error) {
	le := binary.LittleEndian
	offset := 0
	need := func(n int) error {
		if offset+n > len(data) {
			return fmt.Errorf("archive: truncated landblock info")
		}
		return nil
	}

	if err := need(8); err != nil {
		return LandblockInfo{}, err
	}
	info := LandblockInfo{
		ID:       le.Uint32(data[0:4]),
		NumCells: le.Uint32(data[4:8]),
	}
	offset = 8

	if err := need(4); err != nil {
		return info, err
	}
	numObjects := le.Uint32(data[offset : offset+4])
	offset += 4

	for i := uint32(0); i < numObjects; i++ {
		if err := need(4); err != nil {
			return info, err
		}
		id := le.Uint32(data[offset : offset+4])
		offset += 4
		frame, err := readFrame(data, &offset)
		if err != nil {
			return info, err
		}
		info.Objects = append(info.Objects, Stab{ID: id, Frame: frame})
	}

	if err := need(4); err != nil {
		return info, err
	}
	numBuildings := le.Uint16(data[offset : offset+2])
	info.PackMask = le.Uint16(data[offset+2 : offset+4])
	offset += 4

	for i := uint16(0); i < numBuildings; i++ {
		if err := need(4); err != nil {
			return info, err
		}
		modelID := le.Uint32(data[offset : offset+4])
		offset += 4
		frame, err := readFrame(data, &offset)
		if err != nil {
			return info, err
		}
		if err := need(6); err != nil {
			return info, err
		}
		numLeaves := le.Uint32(data[offset : offset+4])
		numPortals := le.Uint16(data[offset+4 : offset+6])
		offset += 6

		build := BuildInfo{ModelID: modelID, Frame: frame, NumLeaves: numLeaves}
		for p := uint16(0); p < numPortals; p++ {
			if err := need(6); err != nil {
				return info, err
			}
			portal := Portal{
				Flags:         le.Uint16(data[offset : offset+2]),
				OtherCellID:   le.Uint16(data[offset+2 : offset+4]),
				OtherPortalID: le.Uint16(data[offset+4 : offset+6]),
			}
			offset += 6
			if err := need(2); err != nil {
				return info, err
			}
			numStabs := le.Uint16(data[offset : offset+2])
			offset += 2
			for s := uint16(0); s < numStabs; s++ {
				if err := need(2); err != nil {
					return info, err
				}
				portal.Stabs = append(portal.Stabs, le.Uint16(data[offset:offset+2]))
				offset += 2
			}
			// pad_after = (4 - ((8 + num_stabs*2) % 4)) % 4
			padBase := (8 + int(numStabs)*2) % 4
			if padBase != 0 {
				offset += 4 - padBase
			}
			build.Portals = append(build.Portals, portal)
		}
		info.Buildings = append(info.Buildings, build)
	}

	if info.PackMask&1 != 0 {
		if err := need(4); err != nil {
			return info, err
		}
		count := le.Uint16(data[offset : offset+2])
		offset += 4 // count(2) + bucket_size(2), bucket_size unused
		info.RestrictionTables = make(map[uint32]uint32, count)
		for i := uint16(0); i < count; i++ {
			if err := need(8); err != nil {
				return info, err
			}
			k := le.Uint32(data[offset : offset+4])
			v := le.Uint32(data[offset+4 : offset+8])
			offset += 8
			info.RestrictionTables[k] = v
		}
	}

	return info, nil
}
