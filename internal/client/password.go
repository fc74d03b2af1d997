package client

import "github.com/awnumar/memguard"

// Credential holds the account password in a locked, non-swappable
// buffer for the lifetime of the session, the same pattern the teacher
// uses to protect its Noise/NIKE link keys (memguard.LockedBuffer)
// repurposed here to protect an account credential instead.
type Credential struct {
	buf *memguard.LockedBuffer
}

// NewCredential copies password into a locked buffer and wipes the
// caller's copy of the string is not possible in Go (strings are
// immutable), but the locked buffer itself is mlock'd and zeroed on
// Destroy so the credential has one, bounded, in-memory lifetime.
func NewCredential(password string) *Credential {
	buf := memguard.NewBufferFromBytes([]byte(password))
	return &Credential{buf: buf}
}

// String returns the password for use in a handshake payload. Callers
// should not retain the returned value beyond the call that needs it.
func (c *Credential) String() string {
	return string(c.buf.Bytes())
}

// Destroy wipes and releases the underlying buffer. Safe to call more
// than once.
func (c *Credential) Destroy() {
	c.buf.Destroy()
}
