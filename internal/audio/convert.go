package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DecodeFloat32LE parses raw bytes as mono little-endian float32 PCM.
// The byte length must be a multiple of 4; anything else is a malformed
// payload, not a truncation to tolerate.
func DecodeFloat32LE(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("payload length %d is not a multiple of 4", len(data))
	}

	samples := make([]float32, len(data)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples, nil
}

// EncodeFloat32LE is the inverse of DecodeFloat32LE.
func EncodeFloat32LE(samples []float32) []byte {
	data := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(s))
	}
	return data
}

// Silence returns duration seconds of zero samples at the given rate.
func Silence(durationSec float64, sampleRate int) []float32 {
	n := int(durationSec * float64(sampleRate))
	if n < 0 {
		n = 0
	}
	return make([]float32, n)
}
