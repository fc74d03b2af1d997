package messages

import "github.com/holtburger/holtburger/internal/world"

// Message is one decoded protocol message: the opcode that identified
// it, a typed Body when the opcode is recognised, and the raw
// remaining bytes either way (so an unrecognised opcode is never
// silently swallowed).
type Message struct {
	Opcode Opcode
	Body   interface{}
	Raw    []byte
}

// factories builds a zero-value Unpacker for each opcode this client
// decodes into a concrete type. Opcodes absent from this table decode
// to a Message with a nil Body and the opcode's raw payload bytes,
// mirroring the GameAction/GameEvent RawActionData/RawEventData
// tolerant-fallback pattern at the outer dispatch layer too.
var factories = map[Opcode]func() Unpacker{
	OpCharacterList:              func() Unpacker { return &CharacterListData{} },
	OpCharacterEnterWorldRequest: func() Unpacker { return &CharacterEnterWorldRequestData{} },
	OpCharacterEnterWorld:        func() Unpacker { return &CharacterEnterWorldData{} },
	OpCharacterError:             func() Unpacker { return &CharacterErrorData{} },
	OpServerName:                 func() Unpacker { return &ServerNameData{} },
	OpServerMessage:              func() Unpacker { return &ServerMessageData{} },
	OpHearSpeech:                 func() Unpacker { return &HearSpeechData{} },
	OpSoulEmote:                  func() Unpacker { return &SoulEmoteData{} },
	OpUpdatePosition:             func() Unpacker { return &UpdatePositionData{} },
	OpUpdateMotion:               func() Unpacker { return &MovementEventData{} },
	OpPlayEffect:                 func() Unpacker { return &PlayEffectData{} },
	OpDddInterrogationResponse:   func() Unpacker { return &DddInterrogationResponseData{} },
	OpObjectCreate:               func() Unpacker { return &ObjectCreateData{} },
	OpPlayerCreate:               func() Unpacker { return &PlayerCreateData{} },
	OpObjectDelete:               func() Unpacker { return &ObjectDeleteData{} },
}

// DecodeMessage reads the leading opcode and dispatches to the typed
// decoder registered for it, falling back to an opaque Message when the
// opcode is unrecognised, decode-tolerant per spec.md's error model
// (never an error return; a protocol-level fault, not a process one).
func DecodeMessage(data []byte) Message {
	offset := 0
	raw, ok := readU32(data, &offset)
	if !ok {
		return Message{Raw: data}
	}
	opcode := Opcode(raw)

	switch opcode {
	case OpGameEvent:
		if ev, ok := UnpackGameEvent(data, &offset); ok {
			return Message{Opcode: opcode, Body: ev, Raw: data[offset:]}
		}
		return Message{Opcode: opcode, Raw: data[offset:]}
	case OpGameAction:
		if act, ok := UnpackGameAction(data, &offset); ok {
			return Message{Opcode: opcode, Body: act, Raw: data[offset:]}
		}
		return Message{Opcode: opcode, Raw: data[offset:]}
	}

	factory, known := factories[opcode]
	if !known {
		return Message{Opcode: opcode, Raw: data[offset:]}
	}
	body := factory()
	if !body.Unpack(data, &offset) {
		return Message{Opcode: opcode, Raw: data[offset:]}
	}
	return Message{Opcode: opcode, Body: body, Raw: data[offset:]}
}

// EncodeMessage prepends opcode and appends body's packed bytes.
func EncodeMessage(opcode Opcode, body Packer) []byte {
	var buf []byte
	appendU32(&buf, uint32(opcode))
	body.Pack(&buf)
	return buf
}

// ObjectGUID extracts the guid a decoded Message concerns, when its
// Body carries one, for world-model bookkeeping.
func ObjectGUID(m Message) (world.Guid, bool) {
	switch b := m.Body.(type) {
	case *UpdatePositionData:
		return world.Guid(b.GUID), true
	case *MovementEventData:
		return world.Guid(b.GUID), true
	case *ObjectCreateData:
		return world.Guid(b.Object.GUID), true
	case *PlayerCreateData:
		return world.Guid(b.Player.Object.GUID), true
	case *ObjectDeleteData:
		return world.Guid(b.GUID), true
	case GameEvent:
		return world.Guid(b.Target), true
	}
	return 0, false
}
