// prng.go — xoshiro256++ generator and SHA-256 key seeding.
package steg

import (
	"crypto/sha256"
	"encoding/binary"
	"math/bits"
)

// State is the 256-bit state of the xoshiro256++ generator. Every call to
// Next advances it; the zero State is a fixed point and never produced by Seed
// in practice.
type State struct {
	s [4]uint64
}

// NewState builds a generator state from four explicit words.
func NewState(s0, s1, s2, s3 uint64) State {
	return State{s: [4]uint64{s0, s1, s2, s3}}
}

// Seed maps arbitrary key material to a generator state. The SHA-256 digest
// of key is split into four big-endian words. An empty key is valid.
func Seed(key []byte) State {
	sum := sha256.Sum256(key)
	return NewState(
		binary.BigEndian.Uint64(sum[0:8]),
		binary.BigEndian.Uint64(sum[8:16]),
		binary.BigEndian.Uint64(sum[16:24]),
		binary.BigEndian.Uint64(sum[24:32]),
	)
}

// Words returns the current state words.
func (st *State) Words() [4]uint64 {
	return st.s
}

// Next returns the next 64-bit output and advances the state.
func (st *State) Next() uint64 {
	s := &st.s
	result := bits.RotateLeft64(s[0]+s[3], 23) + s[0]

	t := s[1] << 17
	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}
