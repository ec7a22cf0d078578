package cryptography

import (
	"bytes"
	"crypto/des"
	"encoding/base64"
	"errors"
	"fmt"
)

// TripleDESKeySize is the length the gateway issues its encryption keys in.
const TripleDESKeySize = 24

var ErrInvalidPadding = errors.New("invalid PKCS#7 padding")

func ValidateTripleDESKey(key string) error {
	if len(key) != TripleDESKeySize {
		return fmt.Errorf("encryption key must be %d bytes, got %d", TripleDESKeySize, len(key))
	}
	if _, err := des.NewTripleDESCipher([]byte(key)); err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}
	return nil
}

// EncryptTripleDES encrypts payload with 3DES in ECB mode (no IV) and PKCS#7
// padding, returning standard base64. Equal inputs produce equal outputs; the
// gateway's decryption depends on exactly this construction.
func EncryptTripleDES(payload []byte, key string) (string, error) {
	block, err := des.NewTripleDESCipher([]byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	blockSize := block.BlockSize()
	plaintext := pkcs7Pad(payload, blockSize)
	ciphertext := make([]byte, len(plaintext))
	for start := 0; start < len(plaintext); start += blockSize {
		block.Encrypt(ciphertext[start:start+blockSize], plaintext[start:start+blockSize])
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func DecryptTripleDES(encoded string, key string) ([]byte, error) {
	block, err := des.NewTripleDESCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 input: %w", err)
	}
	blockSize := block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, fmt.Errorf("ciphertext must be a non-empty multiple of %d bytes", blockSize)
	}
	plaintext := make([]byte, len(ciphertext))
	for start := 0; start < len(ciphertext); start += blockSize {
		block.Decrypt(plaintext[start:start+blockSize], ciphertext[start:start+blockSize])
	}
	return pkcs7Unpad(plaintext, blockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(append([]byte{}, data...), bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPadding
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-padding], nil
}
