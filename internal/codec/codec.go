// Package codec turns usage sessions into opaque encrypted blobs and back.
//
// The wire format is nonce || ciphertext where the ciphertext seals a
// field-tagged JSON payload with AES-256-GCM. GCM authenticates on open,
// so a truncated, corrupted, or tampered blob fails cleanly; batch
// readers treat that as a skippable warning, never a fatal error.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/Rtur2003/Kognita/internal/tracker"
)

// ErrCorrupt wraps every open failure: short blob, failed authentication,
// or a payload that does not decode. Callers skip such records.
var ErrCorrupt = errors.New("codec: corrupt record")

const (
	keySize        = 32
	kdfIterations  = 4096
	// kdfSalt is constant: the key must be reproducible on the same
	// machine across restarts with no stored secret material.
	kdfSalt = "kognita-session-store-v1"
)

// DeriveKey stretches a machine identifier into the fixed-width store key.
func DeriveKey(machineID string) []byte {
	return pbkdf2.Key([]byte(machineID), []byte(kdfSalt), kdfIterations, keySize, sha256.New)
}

// payload is the serialized form of a session. Field-tagged so the
// on-disk format stays stable if the struct evolves.
type payload struct {
	ProcessName     string `json:"process_name"`
	WindowTitle     string `json:"window_title"`
	StartTime       int64  `json:"start_time"`
	EndTime         int64  `json:"end_time"`
	DurationSeconds int64  `json:"duration_seconds"`
}

// Codec seals and opens session records with a single symmetric key.
// Safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// New creates a codec from a key produced by DeriveKey.
func New(key []byte) (*Codec, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("codec: cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("codec: gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Seal encrypts a session with a fresh random nonce. Two seals of the
// same session produce different blobs.
func (c *Codec) Seal(s tracker.Session) ([]byte, error) {
	p := payload{
		ProcessName:     s.ProcessName,
		WindowTitle:     s.WindowTitle,
		StartTime:       s.StartTime.Unix(),
		EndTime:         s.EndTime.Unix(),
		DurationSeconds: int64(s.Duration() / time.Second),
	}
	plain, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("codec: nonce: %w", err)
	}

	return c.aead.Seal(nonce, nonce, plain, nil), nil
}

// Open decrypts and decodes a blob produced by Seal. Every failure mode
// comes back wrapped in ErrCorrupt.
func (c *Codec) Open(blob []byte) (tracker.Session, error) {
	if len(blob) < c.aead.NonceSize() {
		return tracker.Session{}, fmt.Errorf("%w: blob too short", ErrCorrupt)
	}

	nonce, ciphertext := blob[:c.aead.NonceSize()], blob[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return tracker.Session{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var p payload
	if err := json.Unmarshal(plain, &p); err != nil {
		return tracker.Session{}, fmt.Errorf("%w: payload: %v", ErrCorrupt, err)
	}

	return tracker.Session{
		ProcessName: p.ProcessName,
		WindowTitle: p.WindowTitle,
		StartTime:   time.Unix(p.StartTime, 0),
		EndTime:     time.Unix(p.EndTime, 0),
	}, nil
}
