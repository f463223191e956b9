package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. Tuned to be expensive enough to deter offline
// brute force while staying acceptable for interactive login.
const (
	memoryKiB   uint32 = 19456
	timeCost    uint32 = 3
	parallelism uint8  = 1
	saltLength         = 16
	keyLength   uint32 = 32
)

// ErrMalformedHash indicates a stored hash that cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// Hasher hashes and verifies passwords with Argon2id. The process-wide
// pepper is appended to the raw password before hashing, so a leaked hash
// database alone is not enough for an offline attack.
type Hasher struct {
	pepper string
}

// NewHasher creates a Hasher with the given deployment pepper.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// Hash derives a PHC-encoded Argon2id hash of the peppered password.
func (h *Hasher) Hash(raw string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(raw+h.pepper), salt, timeCost, memoryKiB, parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, timeCost, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether raw matches the stored PHC-encoded hash. The
// comparison is constant-time.
func (h *Hasher) Verify(raw, encoded string) (bool, error) {
	salt, key, m, t, p, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(raw+h.pepper), salt, t, m, p, uint32(len(key)))

	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

func parsePHC(encoded string) (salt, key []byte, m, t uint32, p uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	if m == 0 || t == 0 || p == 0 {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	return salt, key, m, t, p, nil
}
