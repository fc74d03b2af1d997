package messages

// PlaySoundData tells the client to play a sound effect originating at
// target, at the given volume (0.0-1.0).
type PlaySoundData struct {
	Target  uint32
	SoundID uint32
	Volume  float32
}

func (m *PlaySoundData) Unpack(data []byte, offset *int) bool {
	target, ok := readU32(data, offset)
	if !ok {
		return false
	}
	soundID, ok := readU32(data, offset)
	if !ok {
		return false
	}
	volume, ok := readF32(data, offset)
	if !ok {
		return false
	}
	m.Target, m.SoundID, m.Volume = target, soundID, volume
	return true
}

func (m PlaySoundData) Pack(buf *[]byte) {
	appendU32(buf, m.Target)
	appendU32(buf, m.SoundID)
	appendF32(buf, m.Volume)
}

// PlayEffectData tells the client to play a graphical script effect on
// target, at the given playback speed.
type PlayEffectData struct {
	Target   uint32
	ScriptID uint32
	Speed    float32
}

func (m *PlayEffectData) Unpack(data []byte, offset *int) bool {
	target, ok := readU32(data, offset)
	if !ok {
		return false
	}
	scriptID, ok := readU32(data, offset)
	if !ok {
		return false
	}
	speed, ok := readF32(data, offset)
	if !ok {
		return false
	}
	m.Target, m.ScriptID, m.Speed = target, scriptID, speed
	return true
}

func (m PlayEffectData) Pack(buf *[]byte) {
	appendU32(buf, m.Target)
	appendU32(buf, m.ScriptID)
	appendF32(buf, m.Speed)
}
