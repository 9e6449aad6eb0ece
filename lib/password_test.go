package lib

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func encodeArgon2(password string, salt []byte, memory, time uint32, threads uint8, keyLen uint32) string {
	hash := argon2.IDKey([]byte(password), salt, time, memory, threads, keyLen)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, time, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func TestDecodeArgon2Hash(t *testing.T) {
	salt := []byte("0123456789abcdef")
	encoded := encodeArgon2("hunter2-but-longer", salt, 64*1024, 1, 4, 32)

	parts, err := DecodeArgon2Hash(encoded)
	require.NoError(t, err)

	assert.Equal(t, uint32(64*1024), parts.Memory)
	assert.Equal(t, uint32(1), parts.Time)
	assert.Equal(t, uint8(4), parts.Threads)
	assert.Equal(t, uint32(32), parts.KeyLen)
	assert.Equal(t, salt, parts.Salt)
	assert.Len(t, parts.Hash, 32)
}

func TestDecodeArgon2Hash_VerifyRoundTrip(t *testing.T) {
	salt := []byte("fedcba9876543210")
	password := "correct horse battery staple"
	encoded := encodeArgon2(password, salt, 64*1024, 1, 4, 32)

	parts, err := DecodeArgon2Hash(encoded)
	require.NoError(t, err)

	recomputed := argon2.IDKey([]byte(password), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)
	assert.True(t, SecureCompare(recomputed, parts.Hash))

	wrong := argon2.IDKey([]byte("wrong password"), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)
	assert.False(t, SecureCompare(wrong, parts.Hash))
}

func TestDecodeArgon2Hash_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "wrong segment count", encoded: "$argon2id$v=19$m=65536,t=1,p=4$salt"},
		{name: "wrong algorithm", encoded: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeArgon2Hash(tt.encoded)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestDecodeArgon2Hash_IncompatibleVersion(t *testing.T) {
	encoded := "$argon2id$v=18$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g"
	_, err := DecodeArgon2Hash(encoded)
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare([]byte("same"), []byte("same")))
	assert.False(t, SecureCompare([]byte("same"), []byte("diff")))
	assert.False(t, SecureCompare([]byte("short"), []byte("longer input")))
	assert.True(t, SecureCompare(nil, nil))
}
