package rng

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"
)

// Hash applies xxHash3 to input under secret. The reference algorithm
// (XXH3_64bits_withSecret) takes the secret as auxiliary seed material
// rather than a data prefix; zeebo/xxh3's public API does not expose a
// custom-secret entry point, so the secret is folded in by prefixing it
// to the hashed buffer. This preserves the property the engine actually
// needs — the same (secret, input) pair always produces the same output,
// and different secrets produce independent streams for the same input.
func Hash(secret Secret, input []byte) uint64 {
	buf := make([]byte, 0, SecretSize+len(input))
	buf = append(buf, secret[:]...)
	buf = append(buf, input...)
	return xxh3.Hash(buf)
}

// HashValues serialises a heterogeneous sequence of trivially-copyable
// values contiguously (little-endian, no padding between values) and
// hashes the resulting buffer under secret.
func HashValues(secret Secret, values ...any) uint64 {
	return Hash(secret, serialise(values...))
}

func serialise(values ...any) []byte {
	buf := new(bytes.Buffer)
	for _, v := range values {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			panic(fmt.Sprintf("rng: value of type %T is not a fixed-size trivially-copyable type: %v", v, err))
		}
	}
	return buf.Bytes()
}
