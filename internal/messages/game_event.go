package messages

// GameEvent is the S→C envelope carried by OpGameEvent: a target guid,
// sequence number, inner event opcode, and event-specific body.
type GameEvent struct {
	Target   uint32
	Sequence uint32
	Event    GameEventData
}

type GameEventData interface {
	isGameEventData()
}

type StartGameData struct{}

func (StartGameData) isGameEventData() {}

type RawEventData struct {
	Opcode GameEventOpcode
	Bytes  []byte
}

func (RawEventData) isGameEventData() {}

func (PlayerDescriptionData) isGameEventData()                 {}
func (MagicUpdateEnchantmentData) isGameEventData()             {}
func (MagicUpdateMultipleEnchantmentsData) isGameEventData()    {}
func (MagicRemoveEnchantmentData) isGameEventData()             {}
func (MagicRemoveMultipleEnchantmentsData) isGameEventData()    {}
func (MagicPurgeEnchantmentsData) isGameEventData()             {}
func (MagicPurgeBadEnchantmentsData) isGameEventData()          {}

// UnpackGameEvent decodes a GameEvent envelope from a GAME_EVENT body.
func UnpackGameEvent(data []byte, offset *int) (GameEvent, bool) {
	target, ok := readU32(data, offset)
	if !ok {
		return GameEvent{}, false
	}
	sequence, ok := readU32(data, offset)
	if !ok {
		return GameEvent{}, false
	}
	eventTypeRaw, ok := readU32(data, offset)
	if !ok {
		return GameEvent{}, false
	}
	eventType := GameEventOpcode(eventTypeRaw)

	var event GameEventData
	switch eventType {
	case EventPlayerDescription:
		var d PlayerDescriptionData
		if !d.Unpack(data, offset) {
			return GameEvent{}, false
		}
		event = d
	case EventStartGame:
		event = StartGameData{}
	case EventMagicUpdateEnchantment:
		var d MagicUpdateEnchantmentData
		if !d.Unpack(data, offset) {
			return GameEvent{}, false
		}
		d.Target, d.Sequence = target, sequence
		event = d
	case EventMagicUpdateMultipleEnchantments:
		var d MagicUpdateMultipleEnchantmentsData
		if !d.Unpack(data, offset) {
			return GameEvent{}, false
		}
		d.Target, d.Sequence = target, sequence
		event = d
	case EventMagicRemoveEnchantment:
		var d MagicRemoveEnchantmentData
		if !d.Unpack(data, offset) {
			return GameEvent{}, false
		}
		d.Target, d.Sequence = target, sequence
		event = d
	case EventMagicRemoveMultipleEnchantments:
		var d MagicRemoveMultipleEnchantmentsData
		if !d.Unpack(data, offset) {
			return GameEvent{}, false
		}
		d.Target, d.Sequence = target, sequence
		event = d
	case EventMagicPurgeEnchantments:
		var d MagicPurgeEnchantmentsData
		d.Target, d.Sequence = target, sequence
		event = d
	case EventMagicPurgeBadEnchantments:
		var d MagicPurgeBadEnchantmentsData
		d.Target, d.Sequence = target, sequence
		event = d
	default:
		rest := append([]byte(nil), data[*offset:]...)
		*offset = len(data)
		event = RawEventData{Opcode: eventType, Bytes: rest}
	}

	return GameEvent{Target: target, Sequence: sequence, Event: event}, true
}

// PackGameEvent appends the wire form of e to buf.
func PackGameEvent(buf *[]byte, e GameEvent) {
	appendU32(buf, e.Target)
	appendU32(buf, e.Sequence)
	switch d := e.Event.(type) {
	case PlayerDescriptionData:
		appendU32(buf, uint32(EventPlayerDescription))
		d.Pack(buf)
	case StartGameData:
		appendU32(buf, uint32(EventStartGame))
	case MagicUpdateEnchantmentData:
		appendU32(buf, uint32(EventMagicUpdateEnchantment))
		d.Pack(buf)
	case MagicUpdateMultipleEnchantmentsData:
		appendU32(buf, uint32(EventMagicUpdateMultipleEnchantments))
		d.Pack(buf)
	case MagicRemoveEnchantmentData:
		appendU32(buf, uint32(EventMagicRemoveEnchantment))
		d.Pack(buf)
	case MagicRemoveMultipleEnchantmentsData:
		appendU32(buf, uint32(EventMagicRemoveMultipleEnchantments))
		d.Pack(buf)
	case MagicPurgeEnchantmentsData:
		appendU32(buf, uint32(EventMagicPurgeEnchantments))
	case MagicPurgeBadEnchantmentsData:
		appendU32(buf, uint32(EventMagicPurgeBadEnchantments))
	case RawEventData:
		appendU32(buf, uint32(d.Opcode))
		*buf = append(*buf, d.Bytes...)
	}
}
