package messages

import "github.com/holtburger/holtburger/internal/codec"

// CharacterEntry is one row of a CharacterList message.
type CharacterEntry struct {
	GUID       uint32
	Name       string
	DeleteTime uint32
}

func (e *CharacterEntry) Unpack(data []byte, offset *int) bool {
	guid, ok := readU32(data, offset)
	if !ok {
		return false
	}
	name, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	deleteTime, ok := readU32(data, offset)
	if !ok {
		return false
	}
	e.GUID, e.Name, e.DeleteTime = guid, name, deleteTime
	return true
}

func (e CharacterEntry) Pack(buf *[]byte) {
	appendU32(buf, e.GUID)
	*buf = codec.WriteString16(*buf, e.Name)
	appendU32(buf, e.DeleteTime)
}

// CharacterListData is the OpCharacterList payload: the set of playable
// characters on an account.
type CharacterListData struct {
	Characters      []CharacterEntry
	MaxSlots        uint32
	AccountName     string
	UseTurbineChat  bool
	HasTodExpansion bool
}

func (m *CharacterListData) Unpack(data []byte, offset *int) bool {
	if _, ok := readU32(data, offset); !ok { // leading padding
		return false
	}
	count, ok := readU32(data, offset)
	if !ok {
		return false
	}
	chars := make([]CharacterEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		var e CharacterEntry
		if !e.Unpack(data, offset) {
			break
		}
		chars = append(chars, e)
	}
	if _, ok := readU32(data, offset); !ok { // middle padding
		return false
	}
	maxSlots, ok := readU32(data, offset)
	if !ok {
		return false
	}
	accountName, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	turbine, ok := readU32(data, offset)
	if !ok {
		return false
	}
	tod, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.Characters = chars
	m.MaxSlots = maxSlots
	m.AccountName = accountName
	m.UseTurbineChat = turbine != 0
	m.HasTodExpansion = tod != 0
	return true
}

func (m CharacterListData) Pack(buf *[]byte) {
	appendU32(buf, 0) // leading padding
	appendU32(buf, uint32(len(m.Characters)))
	for _, e := range m.Characters {
		e.Pack(buf)
	}
	appendU32(buf, 0) // middle padding
	appendU32(buf, m.MaxSlots)
	*buf = codec.WriteString16(*buf, m.AccountName)
	if m.UseTurbineChat {
		appendU32(buf, 1)
	} else {
		appendU32(buf, 0)
	}
	if m.HasTodExpansion {
		appendU32(buf, 1)
	} else {
		appendU32(buf, 0)
	}
}

// CharacterEnterWorldRequestData is the empty-bodied C→S request to begin
// entering the world.
type CharacterEnterWorldRequestData struct{}

func (m *CharacterEnterWorldRequestData) Unpack(data []byte, offset *int) bool { return true }
func (m CharacterEnterWorldRequestData) Pack(buf *[]byte)                     {}

// CharacterEnterWorldData is the C→S guid+account selection payload.
type CharacterEnterWorldData struct {
	GUID    uint32
	Account string
}

func (m *CharacterEnterWorldData) Unpack(data []byte, offset *int) bool {
	guid, ok := readU32(data, offset)
	if !ok {
		return false
	}
	account, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	m.GUID, m.Account = guid, account
	return true
}

func (m CharacterEnterWorldData) Pack(buf *[]byte) {
	appendU32(buf, m.GUID)
	*buf = codec.WriteString16(*buf, m.Account)
}

// ServerNameData carries the world server's display name and population.
type ServerNameData struct {
	OnlineCount uint32
	OnlineCap   uint32
	Name        string
}

func (m *ServerNameData) Unpack(data []byte, offset *int) bool {
	count, ok := readU32(data, offset)
	if !ok {
		return false
	}
	cap_, ok := readU32(data, offset)
	if !ok {
		return false
	}
	name, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	m.OnlineCount, m.OnlineCap, m.Name = count, cap_, name
	return true
}

func (m ServerNameData) Pack(buf *[]byte) {
	appendU32(buf, m.OnlineCount)
	appendU32(buf, m.OnlineCap)
	*buf = codec.WriteString16(*buf, m.Name)
}

// CharacterErrorData carries a well-known CharacterErrorCode.
type CharacterErrorData struct {
	ErrorCode uint32
}

func (m *CharacterErrorData) Unpack(data []byte, offset *int) bool {
	v, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.ErrorCode = v
	return true
}

func (m CharacterErrorData) Pack(buf *[]byte) {
	appendU32(buf, m.ErrorCode)
}
