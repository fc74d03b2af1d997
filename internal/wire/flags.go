// Package wire implements the on-the-wire packet and fragment framing
// described by the session transport: a 20-byte packet header, an optional
// set of flag-gated blocks, and 16-byte fragment headers for split messages.
package wire

// PacketFlag is a bitset carried in every packet header. Bits not listed
// here are preserved on decode (stored in Header.Flags) but drive no
// behavior in this package.
type PacketFlag uint32

const (
	FlagRetransmission   PacketFlag = 0x00000001
	FlagEncryptedChecksum PacketFlag = 0x00000002
	FlagBlobFragments    PacketFlag = 0x00000004
	FlagServerSwitch     PacketFlag = 0x00000008
	FlagRequestRetransmit PacketFlag = 0x00000010
	FlagRejectRetransmit PacketFlag = 0x00000020
	FlagAckSequence      PacketFlag = 0x00000040
	FlagDisconnect       PacketFlag = 0x00000080
	FlagLoginRequest     PacketFlag = 0x00000100
	FlagWorldLoginRequest PacketFlag = 0x00020000
	FlagConnectRequest   PacketFlag = 0x00000200
	FlagConnectResponse  PacketFlag = 0x00000400
	FlagTimeSync         PacketFlag = 0x00001000
	FlagEchoRequest      PacketFlag = 0x00002000
	FlagEchoResponse     PacketFlag = 0x00004000
	FlagFlow             PacketFlag = 0x00008000
	FlagCICmd            PacketFlag = 0x00400000
)

// ChecksumSeed is the sentinel value written into a packet's checksum
// field while that checksum is itself being computed.
const ChecksumSeed uint32 = 0xBADD70DD

// HeaderSize is the fixed size in bytes of a packet header.
const HeaderSize = 20

// FragmentHeaderSize is the fixed size in bytes of a fragment header.
const FragmentHeaderSize = 16

// MaxPacketSize is the largest datagram this transport will emit.
const MaxPacketSize = 1024

// QueueGeneral is the default fragment queue id.
const QueueGeneral uint16 = 0x0001

// AceHandshakeRaceDelayMS is the wait after sending CONNECT_RESPONSE before
// the session is considered Connected.
const AceHandshakeRaceDelayMS = 200

func (f PacketFlag) Has(bit PacketFlag) bool {
	return f&bit != 0
}
