// Package types defines core data structures shared across the shielded pool engine.
package types

// Constants for field-element and address encodings used throughout the engine.
const (
	// HashSize is the size of an Fr-encoded hash in bytes (BN254 scalar field, big-endian).
	HashSize = 32

	// AddressSize is the size of a ledger account identifier in bytes.
	AddressSize = 32
)

// Hash represents a 32-byte big-endian encoding of a BN254 Fr element: a
// commitment, a nullifier hash, or a Merkle node/root.
type Hash [HashSize]byte

// Address represents a 32-byte ledger account identifier (caller, recipient, relayer).
type Address [AddressSize]byte

// EmptyHash is the zero hash.
var EmptyHash = Hash{}

// EmptyAddress is the zero address.
var EmptyAddress = Address{}

// IsEmpty returns true if the hash is all zeros.
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// String returns the hex string representation of the hash.
func (h Hash) String() string {
	return bytesToHex(h[:])
}

// HashFromBytes creates a Hash from a byte slice, left-padding with zeros if short.
func HashFromBytes(b []byte) Hash {
	var h Hash
	if len(b) >= HashSize {
		copy(h[:], b[len(b)-HashSize:])
	} else {
		copy(h[HashSize-len(b):], b)
	}
	return h
}

// AddressFromBytes creates an Address from a byte slice, left-padding with zeros if short.
func AddressFromBytes(b []byte) Address {
	var a Address
	if len(b) >= AddressSize {
		copy(a[:], b[len(b)-AddressSize:])
	} else {
		copy(a[AddressSize-len(b):], b)
	}
	return a
}

// bytesToHex converts bytes to a lowercase hex string.
func bytesToHex(b []byte) string {
	const hexChars = "0123456789abcdef"
	result := make([]byte, len(b)*2)
	for i, v := range b {
		result[i*2] = hexChars[v>>4]
		result[i*2+1] = hexChars[v&0x0f]
	}
	return string(result)
}
