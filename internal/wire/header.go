package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTruncated indicates a buffer was shorter than a fixed-size structure
// required.
var ErrTruncated = errors.New("wire: truncated buffer")

// Header is the fixed 20-byte prefix of every packet.
type Header struct {
	Sequence     uint32
	Flags        PacketFlag
	Checksum     uint32
	ConnectionID uint16
	TimeDelta    uint16
	BodySize     uint16
	Iteration    uint16
}

// Decode parses a Header from the front of buf.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrTruncated
	}
	var h Header
	h.Sequence = binary.LittleEndian.Uint32(buf[0:4])
	h.Flags = PacketFlag(binary.LittleEndian.Uint32(buf[4:8]))
	h.Checksum = binary.LittleEndian.Uint32(buf[8:12])
	h.ConnectionID = binary.LittleEndian.Uint16(buf[12:14])
	h.TimeDelta = binary.LittleEndian.Uint16(buf[14:16])
	h.BodySize = binary.LittleEndian.Uint16(buf[16:18])
	h.Iteration = binary.LittleEndian.Uint16(buf[18:20])
	return h, nil
}

// Encode appends the header's wire representation to buf.
func (h Header) Encode(buf []byte) []byte {
	var tmp [HeaderSize]byte
	binary.LittleEndian.PutUint32(tmp[0:4], h.Sequence)
	binary.LittleEndian.PutUint32(tmp[4:8], uint32(h.Flags))
	binary.LittleEndian.PutUint32(tmp[8:12], h.Checksum)
	binary.LittleEndian.PutUint16(tmp[12:14], h.ConnectionID)
	binary.LittleEndian.PutUint16(tmp[14:16], h.TimeDelta)
	binary.LittleEndian.PutUint16(tmp[16:18], h.BodySize)
	binary.LittleEndian.PutUint16(tmp[18:20], h.Iteration)
	return append(buf, tmp[:]...)
}

// FragmentHeader is the fixed 16-byte prefix of each fragment within a
// BLOB_FRAGMENTS-flagged packet.
type FragmentHeader struct {
	MessageSequence  uint32
	MessageID        uint32
	FragmentCount    uint16
	FragmentTotalSize uint16
	FragmentIndex    uint16
	QueueID          uint16
}

func DecodeFragmentHeader(buf []byte) (FragmentHeader, error) {
	if len(buf) < FragmentHeaderSize {
		return FragmentHeader{}, ErrTruncated
	}
	var f FragmentHeader
	f.MessageSequence = binary.LittleEndian.Uint32(buf[0:4])
	f.MessageID = binary.LittleEndian.Uint32(buf[4:8])
	f.FragmentCount = binary.LittleEndian.Uint16(buf[8:10])
	f.FragmentTotalSize = binary.LittleEndian.Uint16(buf[10:12])
	f.FragmentIndex = binary.LittleEndian.Uint16(buf[12:14])
	f.QueueID = binary.LittleEndian.Uint16(buf[14:16])
	return f, nil
}

func (f FragmentHeader) Encode(buf []byte) []byte {
	var tmp [FragmentHeaderSize]byte
	binary.LittleEndian.PutUint32(tmp[0:4], f.MessageSequence)
	binary.LittleEndian.PutUint32(tmp[4:8], f.MessageID)
	binary.LittleEndian.PutUint16(tmp[8:10], f.FragmentCount)
	binary.LittleEndian.PutUint16(tmp[10:12], f.FragmentTotalSize)
	binary.LittleEndian.PutUint16(tmp[12:14], f.FragmentIndex)
	binary.LittleEndian.PutUint16(tmp[14:16], f.QueueID)
	return append(buf, tmp[:]...)
}

// ConnectRequestData is the CONNECT_REQUEST payload sent by the server in
// response to a login request.
type ConnectRequestData struct {
	ServerTime float64
	Cookie     uint64
	ClientID   uint16
	ServerSeed uint32
	ClientSeed uint32
}

func DecodeConnectRequestData(buf []byte) (ConnectRequestData, error) {
	if len(buf) < 28 {
		return ConnectRequestData{}, ErrTruncated
	}
	var c ConnectRequestData
	bits := binary.LittleEndian.Uint64(buf[0:8])
	c.ServerTime = math.Float64frombits(bits)
	c.Cookie = binary.LittleEndian.Uint64(buf[8:16])
	raw := binary.LittleEndian.Uint32(buf[16:20])
	c.ClientID = uint16(raw)
	c.ServerSeed = binary.LittleEndian.Uint32(buf[20:24])
	c.ClientSeed = binary.LittleEndian.Uint32(buf[24:28])
	return c, nil
}

func (c ConnectRequestData) Encode(buf []byte) []byte {
	var tmp [28]byte
	binary.LittleEndian.PutUint64(tmp[0:8], math.Float64bits(c.ServerTime))
	binary.LittleEndian.PutUint64(tmp[8:16], c.Cookie)
	binary.LittleEndian.PutUint32(tmp[16:20], uint32(c.ClientID))
	binary.LittleEndian.PutUint32(tmp[20:24], c.ServerSeed)
	binary.LittleEndian.PutUint32(tmp[24:28], c.ClientSeed)
	return append(buf, tmp[:]...)
}
