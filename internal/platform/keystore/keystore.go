package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"

	"github.com/kislikjeka/moonwallet/internal/platform/session"
)

// Scrypt parameters, fixed per keystore version
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
	keyLen  = 32
	saltLen = 16
	version = 1
)

var (
	// ErrCorrupt means the keystore blob could not be decoded; distinct
	// from a wrong password so callers can tell storage damage apart
	// from a typo
	ErrCorrupt = errors.New("keystore blob is corrupt")
)

// blob is the serialized form of an encrypted secret
type blob struct {
	Version    int    `json:"version"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// Encrypt seals secret material under a password using scrypt-derived
// AES-256-GCM. The returned blob is safe to persist.
func Encrypt(secret []byte, password string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	b := blob{
		Version:    version,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, secret, nil),
	}

	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keystore blob: %w", err)
	}
	return data, nil
}

// Decrypt opens a keystore blob with the given password. A wrong password
// yields session.ErrInvalidPassword; a malformed blob yields ErrCorrupt.
// Both are recoverable and cause no state mutation.
func Decrypt(data []byte, password string) ([]byte, error) {
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if b.Version != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, b.Version)
	}
	if len(b.Salt) != saltLen || len(b.Nonce) == 0 || len(b.Ciphertext) == 0 {
		return nil, fmt.Errorf("%w: missing fields", ErrCorrupt)
	}

	gcm, err := newGCM(password, b.Salt)
	if err != nil {
		return nil, err
	}

	if len(b.Nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: bad nonce length", ErrCorrupt)
	}

	secret, err := gcm.Open(nil, b.Nonce, b.Ciphertext, nil)
	if err != nil {
		// GCM authentication failure: the password does not match
		return nil, session.ErrInvalidPassword
	}
	return secret, nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
