package wire

import (
	"encoding/binary"
	"math"
)

// FlowData is the 6-byte FLOW block: congestion-style accounting the peer
// reports about bytes it has acked and the interval those acks cover.
type FlowData struct {
	BytesAcked uint32
	Interval   uint16
}

const FlowBlockSize = 6

func DecodeFlowData(buf []byte) (FlowData, error) {
	if len(buf) < FlowBlockSize {
		return FlowData{}, ErrTruncated
	}
	return FlowData{
		BytesAcked: binary.LittleEndian.Uint32(buf[0:4]),
		Interval:   binary.LittleEndian.Uint16(buf[4:6]),
	}, nil
}

func (f FlowData) Encode(buf []byte) []byte {
	var tmp [FlowBlockSize]byte
	binary.LittleEndian.PutUint32(tmp[0:4], f.BytesAcked)
	binary.LittleEndian.PutUint16(tmp[4:6], f.Interval)
	return append(buf, tmp[:]...)
}

// Blocks holds the optional per-packet blocks that appear, in this fixed
// order, immediately after the header when their corresponding flag bit is
// set: ACK_SEQUENCE, TIME_SYNC, ECHO_REQUEST/ECHO_RESPONSE, FLOW.
type Blocks struct {
	AckSequence  *uint32
	TimeSync     *float64
	EchoRequest  *float32
	EchoResponse *float32
	Flow         *FlowData
}

// DecodeBlocks consumes the optional blocks signalled by flags from the
// front of buf and returns the remaining bytes (where BLOB_FRAGMENTS
// fragments, if any, begin).
func DecodeBlocks(flags PacketFlag, buf []byte) (Blocks, []byte, error) {
	var b Blocks
	if flags.Has(FlagAckSequence) {
		if len(buf) < 4 {
			return b, nil, ErrTruncated
		}
		v := binary.LittleEndian.Uint32(buf[0:4])
		b.AckSequence = &v
		buf = buf[4:]
	}
	if flags.Has(FlagTimeSync) {
		if len(buf) < 8 {
			return b, nil, ErrTruncated
		}
		bits := binary.LittleEndian.Uint64(buf[0:8])
		v := math.Float64frombits(bits)
		b.TimeSync = &v
		buf = buf[8:]
	}
	if flags.Has(FlagEchoRequest) {
		if len(buf) < 4 {
			return b, nil, ErrTruncated
		}
		v := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
		b.EchoRequest = &v
		buf = buf[4:]
	}
	if flags.Has(FlagEchoResponse) {
		if len(buf) < 4 {
			return b, nil, ErrTruncated
		}
		v := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
		b.EchoResponse = &v
		buf = buf[4:]
	}
	if flags.Has(FlagFlow) {
		fd, err := DecodeFlowData(buf)
		if err != nil {
			return b, nil, err
		}
		b.Flow = &fd
		buf = buf[FlowBlockSize:]
	}
	return b, buf, nil
}

// Encode appends the blocks present in b, in canonical order, to buf. The
// caller is responsible for setting the matching flag bits on the header.
func (b Blocks) Encode(buf []byte) []byte {
	if b.AckSequence != nil {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], *b.AckSequence)
		buf = append(buf, tmp[:]...)
	}
	if b.TimeSync != nil {
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(*b.TimeSync))
		buf = append(buf, tmp[:]...)
	}
	if b.EchoRequest != nil {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(*b.EchoRequest))
		buf = append(buf, tmp[:]...)
	}
	if b.EchoResponse != nil {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(*b.EchoResponse))
		buf = append(buf, tmp[:]...)
	}
	if b.Flow != nil {
		buf = b.Flow.Encode(buf)
	}
	return buf
}
