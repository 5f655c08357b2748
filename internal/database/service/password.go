package service

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// defaultPBKDF2Iterations applies to Werkzeug hashes whose method omits a count
const defaultPBKDF2Iterations = 600000

// HashPassword hashes password with bcrypt at cost
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash. Besides
// bcrypt it accepts Werkzeug "pbkdf2:<hash>[:<iterations>]$salt$hex" and
// "scrypt:<n>:<r>:<p>$salt$hex" hashes.
func CheckPassword(stored, password string) bool {
	if IsLegacyHash(stored) {
		return checkWerkzeugHash(stored, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// IsLegacyHash reports whether stored is a Werkzeug hash that should be
// replaced with bcrypt after the next successful login.
func IsLegacyHash(stored string) bool {
	return strings.HasPrefix(stored, "pbkdf2:") || strings.HasPrefix(stored, "scrypt:")
}

func checkWerkzeugHash(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, digestHex := parts[0], parts[1], parts[2]

	want, err := hex.DecodeString(digestHex)
	if err != nil || len(want) == 0 {
		return false
	}

	var got []byte
	args := strings.Split(method, ":")
	switch args[0] {
	case "pbkdf2":
		if len(args) < 2 || len(args) > 3 {
			return false
		}
		newHash := hashByName(args[1])
		if newHash == nil {
			return false
		}
		iterations := defaultPBKDF2Iterations
		if len(args) == 3 {
			iterations, err = strconv.Atoi(args[2])
			if err != nil || iterations < 1 {
				return false
			}
		}
		got = pbkdf2.Key([]byte(password), []byte(salt), iterations, newHash().Size(), newHash)
	case "scrypt":
		if len(args) != 4 {
			return false
		}
		n, errN := strconv.Atoi(args[1])
		r, errR := strconv.Atoi(args[2])
		p, errP := strconv.Atoi(args[3])
		if errN != nil || errR != nil || errP != nil {
			return false
		}
		got, err = scrypt.Key([]byte(password), []byte(salt), n, r, p, len(want))
		if err != nil {
			return false
		}
	default:
		return false
	}

	return subtle.ConstantTimeCompare(got, want) == 1
}

func hashByName(name string) func() hash.Hash {
	switch name {
	case "sha1":
		return sha1.New
	case "sha256":
		return sha256.New
	case "sha512":
		return sha512.New
	default:
		return nil
	}
}
