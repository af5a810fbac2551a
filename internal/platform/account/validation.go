package account

import (
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Address regex: 0x followed by exactly 40 hex characters
var addressRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ValidateAddress validates an address and returns the checksummed form.
// A mixed-case input must carry a correct checksum.
func ValidateAddress(address string) (string, error) {
	if address == "" {
		return "", ErrMissingAddress
	}
	if !addressRegex.MatchString(address) {
		return "", ErrInvalidAddress
	}

	checksummed := ToChecksumAddress(address)
	if isMixedCase(address) && address != checksummed {
		return "", ErrInvalidChecksum
	}
	return checksummed, nil
}

// ToChecksumAddress converts an address to EIP-55 checksummed format
func ToChecksumAddress(address string) string {
	addr := strings.ToLower(strings.TrimPrefix(address, "0x"))
	hash := keccak256([]byte(addr))

	var result strings.Builder
	result.WriteString("0x")
	for i, c := range addr {
		if c >= '0' && c <= '9' {
			result.WriteRune(c)
			continue
		}
		hashByte := hash[i/2]
		var nibble byte
		if i%2 == 0 {
			nibble = hashByte >> 4
		} else {
			nibble = hashByte & 0x0F
		}
		if nibble >= 8 {
			result.WriteRune(c - 32)
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// AddressesEqual compares two addresses case-insensitively
func AddressesEqual(a, b string) bool {
	return strings.EqualFold(
		strings.TrimPrefix(a, "0x"),
		strings.TrimPrefix(b, "0x"),
	)
}

// AddressFromPublicKey derives the address from a raw public key:
// the last 20 bytes of its keccak-256 hash, checksummed
func AddressFromPublicKey(pub []byte) string {
	hash := keccak256(pub)
	return ToChecksumAddress("0x" + hex.EncodeToString(hash[len(hash)-20:]))
}

func isMixedCase(address string) bool {
	addr := strings.TrimPrefix(address, "0x")
	hasUpper := strings.ContainsAny(addr, "ABCDEF")
	hasLower := strings.ContainsAny(addr, "abcdef")
	return hasUpper && hasLower
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
