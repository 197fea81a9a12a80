package cpu

import (
	"encoding/binary"
	"math"
)

// FloatToBytes encodes f as big-endian IEEE-754 single precision.
func FloatToBytes(f float32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(f))
	return b
}

// BytesToFloat decodes four big-endian bytes as an IEEE-754 single.
// b must hold at least four bytes.
func BytesToFloat(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}
