package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"veilmarket/internal/auctionerrors"
)

const (
	keySize   = 32 // AES-256
	nonceSize = 16
	tagSize   = 16

	pseudonymSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	pseudonymLength  = 8
)

// Vault encrypts and decrypts sensitive identifiers and mints public
// pseudonyms. It is constructed explicitly with its key and passed by
// reference to every caller; there is no ambient key state.
type Vault struct {
	aead cipher.AEAD
}

// New creates a Vault from a 32-byte key.
func New(key []byte) (*Vault, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("vault: key must be %d bytes, got %d: %w", keySize, len(key), auctionerrors.ErrVaultMisconfigured)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("vault: %w: %v", auctionerrors.ErrVaultMisconfigured, err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("vault: %w: %v", auctionerrors.ErrVaultMisconfigured, err)
	}
	return &Vault{aead: aead}, nil
}

// NewFromHex creates a Vault from a 64-character hex-encoded key.
func NewFromHex(hexKey string) (*Vault, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("vault: key is not valid hex: %w", auctionerrors.ErrVaultMisconfigured)
	}
	return New(key)
}

// Seal encrypts plaintext with AES-256-GCM under a fresh random nonce and
// returns "hex(nonce):hex(tag):hex(ciphertext)". The empty string passes
// through unchanged so optional fields need no special casing.
func (v *Vault) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("vault: failed to draw nonce: %w", err)
	}

	// Seal appends the 16-byte tag to the ciphertext; split it back out
	// so the stored segments stay independently inspectable.
	sealed := v.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(ciphertext), nil
}

// Unseal verifies the tag and decrypts a value produced by Seal. A malformed
// segment layout or a failed tag check yields ErrTamperedOrCorrupt. The
// empty string passes through unchanged, mirroring Seal.
func (v *Vault) Unseal(sealedValue string) (string, error) {
	if sealedValue == "" {
		return "", nil
	}

	parts := strings.Split(sealedValue, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("vault: expected nonce:tag:ciphertext, got %d segments: %w", len(parts), auctionerrors.ErrTamperedOrCorrupt)
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != nonceSize {
		return "", fmt.Errorf("vault: bad nonce segment: %w", auctionerrors.ErrTamperedOrCorrupt)
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagSize {
		return "", fmt.Errorf("vault: bad tag segment: %w", auctionerrors.ErrTamperedOrCorrupt)
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("vault: bad ciphertext segment: %w", auctionerrors.ErrTamperedOrCorrupt)
	}

	plaintext, err := v.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("vault: authentication failed: %w", auctionerrors.ErrTamperedOrCorrupt)
	}
	return string(plaintext), nil
}

// MintPseudonym returns prefix + "_" + 8 characters drawn from [A-Z0-9]
// using crypto/rand. Collisions are astronomically unlikely (36^8 ≈ 2.8e12)
// but not impossible; callers retry on a uniqueness violation from storage.
func (v *Vault) MintPseudonym(prefix string) (string, error) {
	raw := make([]byte, pseudonymLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("vault: failed to draw pseudonym bytes: %w", err)
	}

	var b strings.Builder
	b.WriteString(strings.ToUpper(prefix))
	b.WriteByte('_')
	for _, r := range raw {
		b.WriteByte(pseudonymSymbols[int(r)%len(pseudonymSymbols)])
	}
	return b.String(), nil
}
