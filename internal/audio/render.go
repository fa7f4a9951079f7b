package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/tonescript"
)

const (
	DefaultSampleRate = 16000
	FullScale         = 32767
)

// Render samples gen for durationSec seconds at sampleRate and returns
// mono int16 PCM. Generator values are full scale at ±1 and clipped beyond.
func Render(gen tonescript.Generator, durationSec float64, sampleRate int) ([]int16, error) {
	numSamples := int(durationSec * float64(sampleRate))
	if numSamples < 0 {
		numSamples = 0
	}
	samples := make([]int16, numSamples)
	if _, err := RenderInto(gen, 0, samples, sampleRate); err != nil {
		return nil, err
	}
	return samples, nil
}

// RenderInto fills dst with the samples that start at sample index start,
// avoiding allocation. On error it returns the portion filled so far.
func RenderInto(gen tonescript.Generator, start int, dst []int16, sampleRate int) ([]int16, error) {
	for i := range dst {
		n := start + i
		v, err := gen(float64(n) / float64(sampleRate))
		if err != nil {
			return dst[:i], fmt.Errorf("render sample %d: %w", n, err)
		}
		dst[i] = toInt16(v)
	}
	return dst, nil
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(math.Round(v * FullScale))
}

// Int16ToBytes converts int16 samples to s16le byte slice.
func Int16ToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	return Int16ToBytesInto(samples, buf)
}

// Int16ToBytesInto writes s16le bytes into dst, avoiding allocation.
// dst must have capacity >= len(samples)*2. Returns the used portion.
func Int16ToBytesInto(samples []int16, dst []byte) []byte {
	dst = dst[:len(samples)*2]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(s))
	}
	return dst
}

// BytesToInt16 converts s16le byte slice to int16 samples.
func BytesToInt16(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}
