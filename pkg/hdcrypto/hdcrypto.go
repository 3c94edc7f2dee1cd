// Package hdcrypto implements the key derivation and address-payload
// decryption scheme used to decide whether an address belongs to a wallet.
//
// Every address generated by a hierarchical-deterministic wallet embeds its
// own derivation path, encrypted with a passphrase derived from the wallet's
// root public key. Ownership of an address is therefore decided by a single
// decryption attempt: only the wallet that derived the address can open the
// payload.
package hdcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// AddressPrefix marks the encoding format of addresses carrying an encrypted
// derivation payload.
const AddressPrefix = "Ae2"

// hdPassphraseSalt keeps the derivation deterministic: the same root public
// key must always yield the same passphrase.
var hdPassphraseSalt = []byte("address-hashing")

// DeriveHdPassphrase derives the 32 byte decryption passphrase from a
// wallet's root public key. The derivation is deliberately expensive, callers
// are expected to run it once per wallet and reuse the result for every
// per-address ownership check.
func DeriveHdPassphrase(rootPubKey []byte) ([]byte, error) {
	if len(rootPubKey) <= 0 {
		return nil, ErrNullRootPublicKey
	}
	return scrypt.Key(rootPubKey, hdPassphraseSalt, 32768, 8, 1, 32)
}

// NewAddress builds an address owned by the wallet identified by the given
// passphrase, embedding the encrypted derivation path.
func NewAddress(hdPassphrase []byte, derivationPath []uint32) (string, error) {
	if len(hdPassphrase) != 32 {
		return "", ErrInvalidPassphrase
	}

	gcm, err := newCipher(hdPassphrase)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	payload := gcm.Seal(nonce, nonce, packPath(derivationPath), nil)
	return AddressPrefix + base64.RawURLEncoding.EncodeToString(payload), nil
}

// IsOwned returns whether the given address was derived from the wallet
// identified by the passphrase, by attempting to decrypt its embedded
// derivation payload. It has no side effects and is safe to call from any
// goroutine.
func IsOwned(hdPassphrase []byte, address string) bool {
	path, err := DecryptDerivationPath(hdPassphrase, address)
	return err == nil && path != nil
}

// DecryptDerivationPath recovers the derivation path embedded in an address.
// It fails for addresses derived from a different root key.
func DecryptDerivationPath(hdPassphrase []byte, address string) ([]uint32, error) {
	if len(hdPassphrase) != 32 {
		return nil, ErrInvalidPassphrase
	}
	if !strings.HasPrefix(address, AddressPrefix) {
		return nil, ErrInvalidAddress
	}

	payload, err := base64.RawURLEncoding.DecodeString(
		strings.TrimPrefix(address, AddressPrefix),
	)
	if err != nil {
		return nil, ErrInvalidAddress
	}

	gcm, err := newCipher(hdPassphrase)
	if err != nil {
		return nil, err
	}
	if len(payload) < gcm.NonceSize() {
		return nil, ErrInvalidAddress
	}

	nonce, text := payload[:gcm.NonceSize()], payload[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, text, nil)
	if err != nil {
		return nil, ErrNotOwned
	}

	return unpackPath(plaintext)
}

func newCipher(key []byte) (cipher.AEAD, error) {
	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blockCipher)
}

func packPath(path []uint32) []byte {
	buf := make([]byte, 4*len(path))
	for i, p := range path {
		binary.BigEndian.PutUint32(buf[4*i:], p)
	}
	return buf
}

func unpackPath(buf []byte) ([]uint32, error) {
	if len(buf)%4 != 0 {
		return nil, ErrInvalidAddress
	}
	path := make([]uint32, 0, len(buf)/4)
	for i := 0; i < len(buf); i += 4 {
		path = append(path, binary.BigEndian.Uint32(buf[i:]))
	}
	return path, nil
}
