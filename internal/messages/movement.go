package messages

import "github.com/holtburger/holtburger/internal/world"

// UpdatePositionData is the S→C position update for a single object.
type UpdatePositionData struct {
	GUID uint32
	Pos  world.PositionPack
}

func (m *UpdatePositionData) Unpack(data []byte, offset *int) bool {
	guid, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.GUID = guid
	return m.Pos.Unpack(data, offset)
}

func (m UpdatePositionData) Pack(buf *[]byte) {
	appendU32(buf, m.GUID)
	m.Pos.Pack(buf)
}

// MovementEventData announces a movement state transition (walk, run,
// jump, turn) for an object along with its resulting position.
type MovementEventData struct {
	GUID      uint32
	EventType uint32
	Pos       world.PositionPack
}

func (m *MovementEventData) Unpack(data []byte, offset *int) bool {
	guid, ok := readU32(data, offset)
	if !ok {
		return false
	}
	eventType, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.GUID, m.EventType = guid, eventType
	return m.Pos.Unpack(data, offset)
}

func (m MovementEventData) Pack(buf *[]byte) {
	appendU32(buf, m.GUID)
	appendU32(buf, m.EventType)
	m.Pos.Pack(buf)
}
