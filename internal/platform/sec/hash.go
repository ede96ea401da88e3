// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec provides the cryptographic primitives used by the Auth Store:
password hashing and session-key generation.

Password hashing uses BLAKE2b-256, a fast cryptographic hash, rather than a
deliberately slow one (bcrypt/argon2/scrypt): the auth store fixes one
algorithm per deployment with no per-row algorithm field, per spec.
*/
package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// SessionKeyAlphabet is the fixed 89-character alphabet session keys are
// drawn from: letters (upper/lower), digits, and a handful of punctuation
// characters safe to carry in an HTTP header unescaped.
const SessionKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	"!#$%&()*+,-./:;<=>?@[]^_{|}~"

// SessionKeyDefaultLength is the default number of characters in a newly
// issued session key.
const SessionKeyDefaultLength = 32

// HashPassword computes the lowercase-hex BLAKE2b-256 digest of
// (password-bytes ‖ salt-bytes). The salt is supplied by the caller; the
// auth store itself never generates or stores salts (see Store Salt
// authority, spec §3/§8).
func HashPassword(password, salt string) (string, error) {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("sec: failed to initialize hasher: %w", err)
	}

	hasher.Write([]byte(password))
	hasher.Write([]byte(salt))

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// CheckPasswordHash reports whether password, combined with salt, hashes to
// existingHash. Comparison is constant-time to avoid leaking partial
// matches through timing.
func CheckPasswordHash(password, salt, existingHash string) (bool, error) {
	computed, err := HashPassword(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(existingHash)) == 1, nil
}

// GenerateSalt returns a short opaque random ASCII string suitable as a
// per-user salt. The domain store is the sole authority for a user's salt
// (spec §3); this is called only at user-insertion time.
func GenerateSalt(length int) (string, error) {
	return randomFromAlphabet(SessionKeyAlphabet, length)
}

// GenerateSessionKey returns a fresh session key of the given length drawn
// from [SessionKeyAlphabet]. length <= 0 defaults to
// [SessionKeyDefaultLength].
func GenerateSessionKey(length int) (string, error) {
	if length <= 0 {
		length = SessionKeyDefaultLength
	}
	return randomFromAlphabet(SessionKeyAlphabet, length)
}

// randomFromAlphabet draws length runes uniformly from alphabet using a
// CSPRNG, rejecting byte values that would bias the distribution.
func randomFromAlphabet(alphabet string, length int) (string, error) {
	n := len(alphabet)
	// Largest multiple of n that fits in a byte; values above this are
	// rejected to avoid modulo bias.
	limit := 256 - (256 % n)

	out := make([]byte, 0, length)
	buf := make([]byte, length+16)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if len(out) == length {
				break
			}
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%n])
		}
	}

	return string(out), nil
}
