// Package messages defines the typed message bodies exchanged once a
// session has delivered an ordered byte stream, along with the opcode
// tables that drive dispatch.
package messages

// Opcode is the leading 32-bit little-endian value of every message body.
type Opcode uint32

const (
	OpCharacterList             Opcode = 0xF658
	OpCharacterEnterWorldRequest Opcode = 0xF7C8
	OpCharacterEnterWorldServerReady Opcode = 0xF7DF
	OpCharacterEnterWorld       Opcode = 0xF657
	OpObjectCreate              Opcode = 0xF745
	OpPlayerCreate               Opcode = 0xF746
	OpObjectDelete               Opcode = 0xF747
	OpParentEvent                Opcode = 0xF749
	OpPickupEvent                Opcode = 0xF74A
	OpSetState                   Opcode = 0xF74B
	OpUpdateObject                Opcode = 0xF7DB
	OpPlayEffect                  Opcode = 0xF755
	OpGameEvent                   Opcode = 0xF7B0
	OpGameAction                  Opcode = 0xF7B1
	OpServerMessage               Opcode = 0xF7E0
	OpHearSpeech                  Opcode = 0x02BB
	OpSoulEmote                   Opcode = 0x01E2
	OpCharacterError              Opcode = 0xF659
	OpServerName                  Opcode = 0xF7E1
	OpBootAccount                 Opcode = 0xF7DC
	OpDddInterrogation            Opcode = 0xF7E5
	OpDddInterrogationResponse    Opcode = 0xF7E6
	OpPrivateUpdatePropertyInt    Opcode = 0x02CD
	OpPublicUpdatePropertyInt     Opcode = 0x02CE
	OpPrivateUpdatePropertyInt64  Opcode = 0x02CF
	OpPublicUpdatePropertyInt64   Opcode = 0x02D0
	OpPrivateUpdatePropertyBool   Opcode = 0x02D1
	OpPublicUpdatePropertyBool    Opcode = 0x02D2
	OpPrivateUpdatePropertyFloat  Opcode = 0x02D3
	OpPublicUpdatePropertyFloat   Opcode = 0x02D4
	OpPrivateUpdatePropertyString Opcode = 0x02D5
	OpPublicUpdatePropertyString  Opcode = 0x02D6
	OpPrivateUpdatePropertyDID    Opcode = 0x02D7
	OpPublicUpdatePropertyDID     Opcode = 0x02D8
	OpPrivateUpdatePropertyIID    Opcode = 0x02D9
	OpPublicUpdatePropertyIID     Opcode = 0x02DA
	OpPrivateUpdateSkill          Opcode = 0x02DD
	OpPrivateUpdateAttribute      Opcode = 0x02E3
	OpPrivateUpdateVital          Opcode = 0x02E7
	OpPrivateUpdateVitalCurrent   Opcode = 0x02E9
	OpUpdateMotion                Opcode = 0xF74C
	OpUpdatePosition              Opcode = 0xF748
	OpVectorUpdate                Opcode = 0xF74E
	OpAutonomousPosition          Opcode = 0xF753
)

// GameActionOpcode identifies the inner C→S action carried by a GameAction
// envelope (see OpGameAction).
type GameActionOpcode uint32

const (
	ActionTalk               GameActionOpcode = 0x0015
	ActionDropItem           GameActionOpcode = 0x0019
	ActionPutItemInContainer GameActionOpcode = 0x001A
	ActionUse                GameActionOpcode = 0x0113
	ActionLoginComplete      GameActionOpcode = 0x00A1
	ActionIdentifyObject     GameActionOpcode = 0x00C9
)

// GameEventOpcode identifies the inner S→C event carried by a GameEvent
// envelope (see OpGameEvent).
type GameEventOpcode uint32

const (
	EventPlayerDescription               GameEventOpcode = 0x0013
	EventStartGame                       GameEventOpcode = 0x0282
	EventChannelBroadcast                GameEventOpcode = 0x0147
	EventTell                            GameEventOpcode = 0x02BD
	EventMagicUpdateEnchantment          GameEventOpcode = 0x02C2
	EventMagicRemoveEnchantment          GameEventOpcode = 0x02C3
	EventMagicUpdateMultipleEnchantments GameEventOpcode = 0x02C4
	EventMagicRemoveMultipleEnchantments GameEventOpcode = 0x02C5
	EventMagicPurgeEnchantments          GameEventOpcode = 0x02C6
	EventMagicPurgeBadEnchantments       GameEventOpcode = 0x02C7
)

// CharacterErrorCode is a well-known ClientEvent(kind=Error) reason.
type CharacterErrorCode uint32

const (
	ErrorAccountAlreadyLoggedOn    CharacterErrorCode = 0x00000001
	ErrorEnterGameCharacterInWorld CharacterErrorCode = 0x00000002
)
