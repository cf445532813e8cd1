package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA256 parameters. Digests are self-describing, so these only
// affect newly hashed passwords.
const (
	pbkdf2Iterations = 29000
	pbkdf2SaltLength = 16
	pbkdf2KeyLength  = 32
)

// ab64 is the adapted base64 alphabet used inside digests: standard
// base64 with '+' swapped for '.' and no padding.
var ab64 = base64.RawStdEncoding.WithPadding(base64.NoPadding)

func ab64Encode(b []byte) string {
	return strings.ReplaceAll(ab64.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	return ab64.DecodeString(strings.ReplaceAll(s, ".", "+"))
}

// HashPassword derives a salted one-way digest of the password in the
// form $pbkdf2-sha256$<iterations>$<salt>$<key>.
func HashPassword(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)

	return fmt.Sprintf("$pbkdf2-sha256$%d$%s$%s",
		pbkdf2Iterations,
		ab64Encode(salt),
		ab64Encode(key),
	), nil
}

// VerifyPassword reports whether the password matches the digest. A
// malformed digest verifies as false rather than returning an error, so
// the caller cannot tell a corrupt record from a wrong password.
func VerifyPassword(password, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != "pbkdf2-sha256" {
		return false
	}

	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := ab64Decode(parts[3])
	if err != nil || len(salt) == 0 {
		return false
	}

	key, err := ab64Decode(parts[4])
	if err != nil || len(key) == 0 {
		return false
	}

	computed := pbkdf2.Key([]byte(password), salt, iterations, len(key), sha256.New)

	return subtle.ConstantTimeCompare(computed, key) == 1
}
