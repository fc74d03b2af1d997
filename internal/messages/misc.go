package messages

import "github.com/holtburger/holtburger/internal/codec"

// ServerMessageData is a server-originated informational/system message.
type ServerMessageData struct {
	Message string
}

func (m *ServerMessageData) Unpack(data []byte, offset *int) bool {
	message, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	m.Message = message
	return true
}

func (m ServerMessageData) Pack(buf *[]byte) {
	*buf = codec.WriteString16(*buf, m.Message)
}

// AddEffectData plays a one-shot visual/audio effect on a target.
type AddEffectData struct {
	Target uint32
	Effect uint32
}

func (m *AddEffectData) Unpack(data []byte, offset *int) bool {
	target, ok := readU32(data, offset)
	if !ok {
		return false
	}
	effect, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.Target, m.Effect = target, effect
	return true
}

func (m AddEffectData) Pack(buf *[]byte) {
	appendU32(buf, m.Target)
	appendU32(buf, m.Effect)
}

// BuildLoginPayload constructs the LOGIN_REQUEST payload: a client version
// string followed by a length-prefixed auth block (auth type, flags,
// timestamp, account, admin override, password).
func BuildLoginPayload(account, password string, sequence uint32, clientVersion string) []byte {
	payload := codec.WriteString16(nil, clientVersion)

	lenPos := len(payload)
	payload = append(payload, 0, 0, 0, 0)

	startOfData := len(payload)
	appendU32(&payload, 0x02) // NetAuthType: AccountPassword
	appendU32(&payload, 0x01) // AuthFlags: EnableCrypto
	appendU32(&payload, sequence)
	payload = codec.WriteString16(payload, account)
	payload = codec.WriteString16(payload, "") // AdminOverride
	payload = codec.WriteString32(payload, password)

	dataLen := uint32(len(payload) - startOfData)
	payload[lenPos] = byte(dataLen)
	payload[lenPos+1] = byte(dataLen >> 8)
	payload[lenPos+2] = byte(dataLen >> 16)
	payload[lenPos+3] = byte(dataLen >> 24)

	return payload
}

// MostlyConsecutiveIntSet is a run-length encoded set of ints: a negative
// value x contributes |x|-1 "skipped" iterations, a non-negative value
// contributes one iteration and one element.
type MostlyConsecutiveIntSet struct {
	Iterations int32
	Values     []int32
}

func (s *MostlyConsecutiveIntSet) Unpack(data []byte, offset *int) bool {
	raw, ok := readU32(data, offset)
	if !ok {
		return false
	}
	iterations := int32(raw)
	var values []int32
	currentIters := int32(0)
	for currentIters < iterations {
		raw, ok := readU32(data, offset)
		if !ok {
			return false
		}
		x := int32(raw)
		if x < 0 {
			currentIters += abs32(x) - 1
		} else {
			currentIters++
		}
		values = append(values, x)
	}
	s.Iterations = iterations
	s.Values = values
	return true
}

func (s MostlyConsecutiveIntSet) Pack(buf *[]byte) {
	appendU32(buf, uint32(s.Iterations))
	for _, v := range s.Values {
		appendU32(buf, uint32(v))
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// TaggedIterationList associates a MostlyConsecutiveIntSet with the
// archive entry (type, id) it enumerates iterations for.
type TaggedIterationList struct {
	DatFileType int32
	DatFileID   int32
	List        MostlyConsecutiveIntSet
}

func (t *TaggedIterationList) Unpack(data []byte, offset *int) bool {
	datFileType, ok := readU32(data, offset)
	if !ok {
		return false
	}
	datFileID, ok := readU32(data, offset)
	if !ok {
		return false
	}
	var list MostlyConsecutiveIntSet
	if !list.Unpack(data, offset) {
		return false
	}
	t.DatFileType = int32(datFileType)
	t.DatFileID = int32(datFileID)
	t.List = list
	return true
}

func (t TaggedIterationList) Pack(buf *[]byte) {
	appendU32(buf, uint32(t.DatFileType))
	appendU32(buf, uint32(t.DatFileID))
	t.List.Pack(buf)
}

// DddInterrogationResponseData answers a DDD_INTERROGATION asset-manifest
// probe: per-language lists of which archive entries the client already has.
type DddInterrogationResponseData struct {
	Language uint32
	Lists    []TaggedIterationList
}

func (m *DddInterrogationResponseData) Unpack(data []byte, offset *int) bool {
	language, ok := readU32(data, offset)
	if !ok {
		return false
	}
	count, ok := readU32(data, offset)
	if !ok {
		return false
	}
	lists := make([]TaggedIterationList, 0, count)
	for i := uint32(0); i < count; i++ {
		var t TaggedIterationList
		if !t.Unpack(data, offset) {
			return false
		}
		lists = append(lists, t)
	}
	m.Language = language
	m.Lists = lists
	return true
}

func (m DddInterrogationResponseData) Pack(buf *[]byte) {
	appendU32(buf, m.Language)
	appendU32(buf, uint32(len(m.Lists)))
	for _, t := range m.Lists {
		t.Pack(buf)
	}
}
