package messages

// GameAction is the C→S envelope carried by OpGameAction: a sequence
// number followed by an inner action opcode and action-specific body.
type GameAction struct {
	Sequence uint32
	Data     GameActionData
}

// GameActionData is the decoded inner action. Concrete action types whose
// wire layout is directly evidenced by the protocol commands this client
// exposes (Talk, Drop, PutItemInContainer, Use, IdentifyObject,
// LoginComplete) carry typed fields; action opcodes this client never
// issues (Jump, MoveToState, GetAndWieldItem, StackableSplitToWield, Tell,
// PingRequest) are round-tripped as an opaque RawActionData so the
// envelope dispatch stays complete without inventing an unevidenced
// layout.
type GameActionData interface {
	isGameActionData()
}

type RawActionData struct {
	Opcode GameActionOpcode
	Bytes  []byte
}

func (RawActionData) isGameActionData() {}

type TalkData struct {
	Text     string
	Language uint32
}

func (TalkData) isGameActionData() {}

type DropItemData struct {
	Item uint32
}

func (DropItemData) isGameActionData() {}

type PutItemInContainerData struct {
	Item      uint32
	Container uint32
	Placement uint32
}

func (PutItemInContainerData) isGameActionData() {}

type UseData struct {
	Target uint32
}

func (UseData) isGameActionData() {}

type IdentifyObjectData struct {
	Target uint32
}

func (IdentifyObjectData) isGameActionData() {}

type LoginCompleteData struct{}

func (LoginCompleteData) isGameActionData() {}

// UnpackGameAction decodes a GameAction envelope from a GAME_ACTION body.
func UnpackGameAction(data []byte, offset *int) (GameAction, bool) {
	sequence, ok := readU32(data, offset)
	if !ok {
		return GameAction{}, false
	}
	actionRaw, ok := readU32(data, offset)
	if !ok {
		return GameAction{}, false
	}
	op := GameActionOpcode(actionRaw)

	var actionData GameActionData
	switch op {
	case ActionTalk:
		text, n, err := readString16At(data, *offset)
		if err != nil {
			return GameAction{}, false
		}
		*offset += n
		lang, ok := readU32(data, offset)
		if !ok {
			return GameAction{}, false
		}
		actionData = TalkData{Text: text, Language: lang}
	case ActionDropItem:
		item, ok := readU32(data, offset)
		if !ok {
			return GameAction{}, false
		}
		actionData = DropItemData{Item: item}
	case ActionPutItemInContainer:
		item, ok := readU32(data, offset)
		if !ok {
			return GameAction{}, false
		}
		container, ok := readU32(data, offset)
		if !ok {
			return GameAction{}, false
		}
		placement, ok := readU32(data, offset)
		if !ok {
			return GameAction{}, false
		}
		actionData = PutItemInContainerData{Item: item, Container: container, Placement: placement}
	case ActionUse:
		target, ok := readU32(data, offset)
		if !ok {
			return GameAction{}, false
		}
		actionData = UseData{Target: target}
	case ActionIdentifyObject:
		target, ok := readU32(data, offset)
		if !ok {
			return GameAction{}, false
		}
		actionData = IdentifyObjectData{Target: target}
	case ActionLoginComplete:
		actionData = LoginCompleteData{}
	default:
		rest := append([]byte(nil), data[*offset:]...)
		*offset = len(data)
		actionData = RawActionData{Opcode: op, Bytes: rest}
	}

	return GameAction{Sequence: sequence, Data: actionData}, true
}

// PackGameAction appends the wire form of a to buf.
func PackGameAction(buf *[]byte, a GameAction) {
	appendU32(buf, a.Sequence)
	switch d := a.Data.(type) {
	case TalkData:
		appendU32(buf, uint32(ActionTalk))
		*buf = writeString16At(*buf, d.Text)
		appendU32(buf, d.Language)
	case DropItemData:
		appendU32(buf, uint32(ActionDropItem))
		appendU32(buf, d.Item)
	case PutItemInContainerData:
		appendU32(buf, uint32(ActionPutItemInContainer))
		appendU32(buf, d.Item)
		appendU32(buf, d.Container)
		appendU32(buf, d.Placement)
	case UseData:
		appendU32(buf, uint32(ActionUse))
		appendU32(buf, d.Target)
	case IdentifyObjectData:
		appendU32(buf, uint32(ActionIdentifyObject))
		appendU32(buf, d.Target)
	case LoginCompleteData:
		appendU32(buf, uint32(ActionLoginComplete))
	case RawActionData:
		appendU32(buf, uint32(d.Opcode))
		*buf = append(*buf, d.Bytes...)
	}
}
