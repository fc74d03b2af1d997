package client

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	cacheSaltSize  = 16
	cacheNonceSize = 24
)

// ResumeCache is the last known character list and selected-character
// guid, persisted between runs. The CLI writes it whenever a character
// list arrives or the player enters the world; nothing in this module
// reads it back at startup, so every login still waits on a fresh
// CharacterList round trip. Optional, off by default
// (Config.CacheEnabled); the protocol itself needs no confidentiality
// (spec.md's non-goal), but the on-disk cache legitimately does, since it
// names every character on the account.
type ResumeCache struct {
	Characters   []CachedCharacter `cbor:"characters"`
	SelectedGUID uint32            `cbor:"selected_guid"`
}

// CachedCharacter is the subset of messages.CharacterEntry worth
// persisting (delete_time changes too often to be useful across runs).
type CachedCharacter struct {
	GUID uint32 `cbor:"guid"`
	Name string `cbor:"name"`
}

// SaveResumeCache encrypts and writes cache to path, sealed under a key
// derived from password via argon2, the same derive-then-secretbox-seal
// pattern the teacher's disk.go state writer uses for its own local
// state file.
func SaveResumeCache(path, password string, cache ResumeCache) error {
	plaintext, err := cbor.Marshal(cache)
	if err != nil {
		return fmt.Errorf("client: marshaling resume cache: %w", err)
	}

	salt := make([]byte, cacheSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("client: generating cache salt: %w", err)
	}
	var nonce [cacheNonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("client: generating cache nonce: %w", err)
	}

	var key [32]byte
	copy(key[:], argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32))

	sealed := secretbox.Seal(nil, plaintext, &nonce, &key)

	out := make([]byte, 0, 4+cacheSaltSize+cacheNonceSize+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(sealed)))
	out = append(out, lenBuf...)
	out = append(out, sealed...)

	return os.WriteFile(path, out, 0o600)
}

// LoadResumeCache reads and decrypts a cache written by SaveResumeCache.
// A wrong password or corrupted file returns an error; callers should
// treat that as "no usable cache" rather than fatal.
func LoadResumeCache(path, password string) (*ResumeCache, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("client: reading resume cache: %w", err)
	}
	if len(raw) < cacheSaltSize+cacheNonceSize+4 {
		return nil, fmt.Errorf("client: resume cache too short")
	}

	salt := raw[:cacheSaltSize]
	var nonce [cacheNonceSize]byte
	copy(nonce[:], raw[cacheSaltSize:cacheSaltSize+cacheNonceSize])
	lenOffset := cacheSaltSize + cacheNonceSize
	sealedLen := binary.LittleEndian.Uint32(raw[lenOffset : lenOffset+4])
	sealed := raw[lenOffset+4:]
	if uint32(len(sealed)) != sealedLen {
		return nil, fmt.Errorf("client: resume cache length mismatch")
	}

	var key [32]byte
	copy(key[:], argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32))

	plaintext, ok := secretbox.Open(nil, sealed, &nonce, &key)
	if !ok {
		return nil, fmt.Errorf("client: resume cache failed to decrypt")
	}

	var cache ResumeCache
	if err := cbor.Unmarshal(plaintext, &cache); err != nil {
		return nil, fmt.Errorf("client: decoding resume cache: %w", err)
	}
	return &cache, nil
}
