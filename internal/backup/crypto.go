package backup

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	EncodingPlain      = "json"
	EncodingGzip       = "gzip"
	EncodingEncrypted  = "aes256gcm"
	encryptionSaltSize = 16
	encryptionNonce    = 12
)

// Carrier wraps a compressed or encrypted envelope so the on-disk file stays
// a single JSON document regardless of encoding.
type Carrier struct {
	Version  string `json:"version"`
	Encoding string `json:"encoding"`
	Data     string `json:"data"`
}

// EncodeOptions selects the carrier encoding for an exported envelope.
type EncodeOptions struct {
	Compress   bool
	Passphrase string
}

// Encode serializes the envelope. With neither compression nor a passphrase
// the result is the pretty-printed envelope itself; otherwise the payload is
// wrapped in a Carrier.
func Encode(env Envelope, opts EncodeOptions) ([]byte, error) {
	if !opts.Compress && opts.Passphrase == "" {
		return json.MarshalIndent(env, "", "  ")
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}

	encoding := EncodingPlain
	if opts.Compress {
		payload, err = gzipBytes(payload)
		if err != nil {
			return nil, err
		}
		encoding = EncodingGzip
	}
	if opts.Passphrase != "" {
		payload, err = encrypt(payload, opts.Passphrase)
		if err != nil {
			return nil, err
		}
		encoding = EncodingEncrypted
	}

	carrier := Carrier{
		Version:  EnvelopeVersion,
		Encoding: encoding,
		Data:     base64.StdEncoding.EncodeToString(payload),
	}
	return json.MarshalIndent(carrier, "", "  ")
}

// Decode reads either a bare envelope or a Carrier-wrapped one. The
// passphrase is only consulted for encrypted carriers.
func Decode(data []byte, passphrase string) (*Envelope, error) {
	var carrier Carrier
	if err := json.Unmarshal(data, &carrier); err == nil && carrier.Encoding != "" && carrier.Data != "" {
		return decodeCarrier(carrier, passphrase)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("not a backup file: %w", err)
	}
	return &env, nil
}

func decodeCarrier(carrier Carrier, passphrase string) (*Envelope, error) {
	payload, err := base64.StdEncoding.DecodeString(carrier.Data)
	if err != nil {
		return nil, fmt.Errorf("corrupt carrier data: %w", err)
	}

	switch carrier.Encoding {
	case EncodingEncrypted:
		if passphrase == "" {
			return nil, errors.New("backup is encrypted, passphrase required")
		}
		payload, err = decrypt(payload, passphrase)
		if err != nil {
			return nil, err
		}
		// encrypted payloads may additionally be gzipped
		if isGzip(payload) {
			payload, err = gunzipBytes(payload)
			if err != nil {
				return nil, err
			}
		}
	case EncodingGzip:
		payload, err = gunzipBytes(payload)
		if err != nil {
			return nil, err
		}
	case EncodingPlain:
	default:
		return nil, fmt.Errorf("unknown backup encoding %q", carrier.Encoding)
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("corrupt backup payload: %w", err)
	}
	return &env, nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gunzipBytes(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func isGzip(data []byte) bool {
	return len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, 1, 64*1024, 4, 32)
}

// encrypt seals the payload with AES-256-GCM. Output layout:
// salt(16) || nonce(12) || ciphertext.
func encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, encryptionSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	nonce := make([]byte, encryptionNonce)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	out := append(salt, nonce...)
	return append(out, aesgcm.Seal(nil, nonce, plaintext, nil)...), nil
}

func decrypt(data []byte, passphrase string) ([]byte, error) {
	if len(data) < encryptionSaltSize+encryptionNonce {
		return nil, errors.New("encrypted payload too short")
	}
	salt := data[:encryptionSaltSize]
	nonce := data[encryptionSaltSize : encryptionSaltSize+encryptionNonce]
	ciphertext := data[encryptionSaltSize+encryptionNonce:]

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.New("wrong passphrase or corrupt backup")
	}
	return plaintext, nil
}
