// Package cryptox implements the key derivation and record encryption used to
// protect clinical content on the client. The backend only ever sees
// ciphertext; the key itself is derived locally and never transmitted.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/clinivault/clinivault/internal/common"
)

// KeySize is the size in bytes of a derived user key (AES-256).
const KeySize = 32

// DeriveUserKey derives the user-held encryption key from a passphrase and a
// per-user salt using Argon2id. The same (passphrase, salt) pair always yields
// the same key; losing the passphrase makes the key unrecoverable.
func DeriveUserKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// EncodeKey renders a derived key as an opaque hex string suitable for the
// credential store.
func EncodeKey(key []byte) string {
	return hex.EncodeToString(key)
}

// DecodeKey parses a stored key string back into raw bytes.
func DecodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("malformed key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("malformed key: want %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}

// EncryptRecord serializes record to JSON and encrypts it with AES-GCM under
// the given key. A fresh random 12-byte nonce is generated per call and
// returned alongside the ciphertext.
func EncryptRecord(record any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(record)
	if err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// DecryptRecord decrypts ciphertext produced by EncryptRecord and unmarshals
// the resulting JSON into v. The key and nonce must match the ones used for
// encryption.
func DecryptRecord(ciphertext, nonce, key []byte, v any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}
