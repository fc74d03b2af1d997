package messages

import (
	"math"

	"github.com/holtburger/holtburger/internal/codec"
)

// HearSpeechData is local/area chat heard by the player.
type HearSpeechData struct {
	Message    string
	Sender     uint32
	SenderName string
	ChatType   uint32
}

func (m *HearSpeechData) Unpack(data []byte, offset *int) bool {
	message, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	senderName, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	sender, ok := readU32(data, offset)
	if !ok {
		return false
	}
	chatType, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.Message, m.Sender, m.SenderName, m.ChatType = message, sender, senderName, chatType
	return true
}

func (m HearSpeechData) Pack(buf *[]byte) {
	*buf = codec.WriteString16(*buf, m.Message)
	*buf = codec.WriteString16(*buf, m.SenderName)
	appendU32(buf, m.Sender)
	appendU32(buf, m.ChatType)
}

// TellData is a direct, targeted message.
type TellData struct {
	Message    string
	SenderName string
	SenderID   uint32
	TargetID   uint32
	ChatType   uint32
}

func (m *TellData) Unpack(data []byte, offset *int) bool {
	message, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	senderName, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	senderID, ok := readU32(data, offset)
	if !ok {
		return false
	}
	targetID, ok := readU32(data, offset)
	if !ok {
		return false
	}
	chatType, ok := readU32(data, offset)
	if !ok {
		return false
	}
	// Trailing u32 (usually 0), present but unused.
	if _, ok := readU32(data, offset); !ok {
		return false
	}
	m.Message, m.SenderName, m.SenderID, m.TargetID, m.ChatType = message, senderName, senderID, targetID, chatType
	return true
}

func (m TellData) Pack(buf *[]byte) {
	*buf = codec.WriteString16(*buf, m.Message)
	*buf = codec.WriteString16(*buf, m.SenderName)
	appendU32(buf, m.SenderID)
	appendU32(buf, m.TargetID)
	appendU32(buf, m.ChatType)
	appendU32(buf, 0)
}

// ChannelBroadcastData is a message sent to a named chat channel.
type ChannelBroadcastData struct {
	ChannelID  uint32
	SenderName string
	Message    string
}

func (m *ChannelBroadcastData) Unpack(data []byte, offset *int) bool {
	channelID, ok := readU32(data, offset)
	if !ok {
		return false
	}
	senderName, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	message, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	m.ChannelID, m.SenderName, m.Message = channelID, senderName, message
	return true
}

func (m ChannelBroadcastData) Pack(buf *[]byte) {
	appendU32(buf, m.ChannelID)
	*buf = codec.WriteString16(*buf, m.SenderName)
	*buf = codec.WriteString16(*buf, m.Message)
}

// HearRangedSpeechData is chat heard with an associated audible range.
type HearRangedSpeechData struct {
	Message    string
	SenderName string
	Sender     uint32
	Range      float32
	ChatType   uint32
}

func (m *HearRangedSpeechData) Unpack(data []byte, offset *int) bool {
	message, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	senderName, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	sender, ok := readU32(data, offset)
	if !ok {
		return false
	}
	rangeRaw, ok := readU32(data, offset)
	if !ok {
		return false
	}
	chatType, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.Message, m.SenderName, m.Sender = message, senderName, sender
	m.Range = math.Float32frombits(rangeRaw)
	m.ChatType = chatType
	return true
}

func (m HearRangedSpeechData) Pack(buf *[]byte) {
	*buf = codec.WriteString16(*buf, m.Message)
	*buf = codec.WriteString16(*buf, m.SenderName)
	appendU32(buf, m.Sender)
	appendF32(buf, m.Range)
	appendU32(buf, m.ChatType)
}

// SoulEmoteData is a server-scripted emote ("Bob nods.") targeting no text
// substitution beyond the rendered string.
type SoulEmoteData struct {
	Sender     uint32
	SenderName string
	Text       string
}

func (m *SoulEmoteData) Unpack(data []byte, offset *int) bool {
	sender, ok := readU32(data, offset)
	if !ok {
		return false
	}
	senderName, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	text, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	m.Sender, m.SenderName, m.Text = sender, senderName, text
	return true
}

func (m SoulEmoteData) Pack(buf *[]byte) {
	appendU32(buf, m.Sender)
	*buf = codec.WriteString16(*buf, m.SenderName)
	*buf = codec.WriteString16(*buf, m.Text)
}

// EmoteTextData is a free-text emote ("/e waves").
type EmoteTextData struct {
	Sender     uint32
	SenderName string
	Text       string
}

func (m *EmoteTextData) Unpack(data []byte, offset *int) bool {
	sender, ok := readU32(data, offset)
	if !ok {
		return false
	}
	senderName, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	text, n, err := codec.ReadString16(data[*offset:])
	if err != nil {
		return false
	}
	*offset += n
	m.Sender, m.SenderName, m.Text = sender, senderName, text
	return true
}

func (m EmoteTextData) Pack(buf *[]byte) {
	appendU32(buf, m.Sender)
	*buf = codec.WriteString16(*buf, m.SenderName)
	*buf = codec.WriteString16(*buf, m.Text)
}
