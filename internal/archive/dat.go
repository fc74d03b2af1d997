package archive

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	datHeaderOffset  = 0x140
	directoryNodeSize = 1716
	btreeBranchCount  = 62
)

// Header is the fixed-layout DAT file header, read from datHeaderOffset.
type Header struct {
	Magic          uint32
	BlockSize      uint32
	FileSize       uint32
	Dataset        uint32
	Subset         uint32
	FreeHead       uint32
	FreeTail       uint32
	FreeCount      uint32
	RootOffset     uint32
	NewLRU         uint32
	OldLRU         uint32
	UseLRU         uint32
	MasterMapID    uint32
	EngineVersion  uint32
	GameVersion    uint32
	VersionString  [16]byte
	VersionMinor   uint32
}

func decodeHeader(data []byte) (Header, error) {
	if len(data) < 76 {
		return Header{}, fmt.Errorf("archive: truncated dat header")
	}
	var h Header
	le := binary.LittleEndian
	h.Magic = le.Uint32(data[0:4])
	h.BlockSize = le.Uint32(data[4:8])
	h.FileSize = le.Uint32(data[8:12])
	h.Dataset = le.Uint32(data[12:16])
	h.Subset = le.Uint32(data[16:20])
	h.FreeHead = le.Uint32(data[20:24])
	h.FreeTail = le.Uint32(data[24:28])
	h.FreeCount = le.Uint32(data[28:32])
	h.RootOffset = le.Uint32(data[32:36])
	h.NewLRU = le.Uint32(data[36:40])
	h.OldLRU = le.Uint32(data[40:44])
	h.UseLRU = le.Uint32(data[44:48])
	h.MasterMapID = le.Uint32(data[48:52])
	h.EngineVersion = le.Uint32(data[52:56])
	h.GameVersion = le.Uint32(data[56:60])
	copy(h.VersionString[:], data[60:76])
	if len(data) >= 80 {
		h.VersionMinor = le.Uint32(data[76:80])
	}
	return h, nil
}

// Entry is a single DAT directory entry: a resource id mapped to its
// (possibly compressed) byte range.
type Entry struct {
	BitFlags  uint32
	ID        uint32
	Offset    uint32
	Size      uint32
	Timestamp uint32
	Version   uint32
}

func (e Entry) FileType() FileType   { return FileTypeFromID(e.ID) }
func (e Entry) IsCompressed() bool { return e.BitFlags&0x01 != 0 }

const direntSize = 24

func decodeEntry(data []byte) Entry {
	le := binary.LittleEndian
	return Entry{
		BitFlags:  le.Uint32(data[0:4]),
		ID:        le.Uint32(data[4:8]),
		Offset:    le.Uint32(data[8:12]),
		Size:      le.Uint32(data[12:16]),
		Timestamp: le.Uint32(data[16:20]),
		Version:   le.Uint32(data[20:24]),
	}
}

// Database is an opened DAT file: its header plus the flattened B-tree
// directory of every entry it holds.
type Database struct {
	Header Header
	Files  map[uint32]Entry
	path   string
}

// Open reads a DAT file's header and walks its B-tree directory.
func Open(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: opening dat file %s: %w", path, err)
	}
	defer f.Close()

	headerBuf := make([]byte, 80)
	if _, err := f.ReadAt(headerBuf, datHeaderOffset); err != nil {
		return nil, fmt.Errorf("archive: reading dat header: %w", err)
	}
	header, err := decodeHeader(headerBuf)
	if err != nil {
		return nil, err
	}

	db := &Database{
		Header: header,
		Files:  make(map[uint32]Entry),
		path:   path,
	}
	if err := db.readNode(header.RootOffset); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *Database) readNode(offset uint32) error {
	if offset == 0 {
		return nil
	}
	data, err := db.readFileData(offset, directoryNodeSize)
	if err != nil {
		return err
	}

	var branches [btreeBranchCount]uint32
	pos := 0
	le := binary.LittleEndian
	for i := range branches {
		branches[i] = le.Uint32(data[pos : pos+4])
		pos += 4
	}
	entryCount := le.Uint32(data[pos : pos+4])
	pos += 4

	for i := uint32(0); i < entryCount; i++ {
		if pos+direntSize > len(data) {
			return fmt.Errorf("archive: directory node truncated")
		}
		entry := decodeEntry(data[pos : pos+direntSize])
		pos += direntSize
		db.Files[entry.ID] = entry
	}

	if branches[0] != 0 {
		limit := int(entryCount) + 1
		if limit > len(branches) {
			limit = len(branches)
		}
		for _, branch := range branches[:limit] {
			if branch != 0 {
				if err := db.readNode(branch); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// GetFile returns the decompressed bytes of the entry with the given id.
func (db *Database) GetFile(id uint32) ([]byte, error) {
	entry, ok := db.Files[id]
	if !ok {
		return nil, fmt.Errorf("archive: file id %08X not found", id)
	}
	data, err := db.readFileData(entry.Offset, entry.Size)
	if err != nil {
		return nil, err
	}
	if entry.IsCompressed() {
		return DecompressLRS(data), nil
	}
	return data, nil
}

// readFileData follows the DAT's block-chain layout: each block's first
// 4 bytes are the offset of the next block (0 if this is the last), and
// the remaining (BlockSize-4) bytes are payload.
func (db *Database) readFileData(offset, size uint32) ([]byte, error) {
	f, err := os.Open(db.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buffer := make([]byte, size)
	var bufferOffset, remaining, current = uint32(0), size, offset

	for remaining > 0 {
		ptrBytes := make([]byte, 4)
		if _, err := f.ReadAt(ptrBytes, int64(current)); err != nil {
			return nil, fmt.Errorf("archive: reading block pointer: %w", err)
		}
		nextAddress := binary.LittleEndian.Uint32(ptrBytes)

		if nextAddress == 0 {
			if _, err := f.ReadAt(buffer[bufferOffset:bufferOffset+remaining], int64(current)+4); err != nil {
				return nil, fmt.Errorf("archive: reading final block: %w", err)
			}
			remaining = 0
		} else {
			blockDataSize := db.Header.BlockSize - 4
			toRead := remaining
			if toRead > blockDataSize {
				toRead = blockDataSize
			}
			if _, err := f.ReadAt(buffer[bufferOffset:bufferOffset+toRead], int64(current)+4); err != nil {
				return nil, fmt.Errorf("archive: reading block: %w", err)
			}
			bufferOffset += toRead
			remaining -= toRead
			current = nextAddress
		}
	}
	return buffer, nil
}

// WeenieName returns the Name string property of the weenie template
// stored under id, if present and parseable.
func (db *Database) WeenieName(wcid uint32) (string, bool) {
	data, err := db.GetFile(wcid)
	if err != nil {
		return "", false
	}
	w, err := UnpackWeenie(data)
	if err != nil {
		return "", false
	}
	name, ok := w.Bag.Strings[propertyStringName]
	return name, ok
}
