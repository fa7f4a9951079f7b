package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hraban/opus"
)

// maxPacketSize bounds a single encoded Opus packet.
const maxPacketSize = 1500

// ErrFrameSize is returned for frame durations Opus cannot encode.
var ErrFrameSize = errors.New("codec: unsupported opus frame duration")

// Encoder converts mono int16 PCM into Opus packets of a fixed duration.
type Encoder struct {
	enc       *opus.Encoder
	frameSize int
}

// NewEncoder creates an Opus encoder for mono audio. frameMs must be one of
// the durations Opus supports (10, 20, 40 or 60).
func NewEncoder(sampleRate, frameMs int) (*Encoder, error) {
	switch frameMs {
	case 10, 20, 40, 60:
	default:
		return nil, fmt.Errorf("%w: %dms", ErrFrameSize, frameMs)
	}
	enc, err := opus.NewEncoder(sampleRate, 1, opus.AppVoIP)
	if err != nil {
		return nil, fmt.Errorf("create opus encoder: %w", err)
	}
	return &Encoder{
		enc:       enc,
		frameSize: sampleRate * frameMs / 1000,
	}, nil
}

// FrameSize returns the number of samples per packet.
func (e *Encoder) FrameSize() int { return e.frameSize }

// Encode splits pcm into frames, zero-padding the last one, and encodes
// each frame into one packet.
func (e *Encoder) Encode(pcm []int16) ([][]byte, error) {
	frames := make([][]byte, 0, (len(pcm)+e.frameSize-1)/e.frameSize)
	frame := make([]int16, e.frameSize)
	for off := 0; off < len(pcm); off += e.frameSize {
		n := copy(frame, pcm[off:])
		for i := n; i < len(frame); i++ {
			frame[i] = 0
		}

		buf := make([]byte, maxPacketSize)
		size, err := e.enc.Encode(frame, buf)
		if err != nil {
			return nil, fmt.Errorf("encode frame at sample %d: %w", off, err)
		}
		frames = append(frames, buf[:size])
	}
	return frames, nil
}

// Decoder converts Opus packets back into mono int16 PCM.
type Decoder struct {
	dec       *opus.Decoder
	frameSize int
}

// NewDecoder creates a mono Opus decoder.
func NewDecoder(sampleRate, frameMs int) (*Decoder, error) {
	dec, err := opus.NewDecoder(sampleRate, 1)
	if err != nil {
		return nil, fmt.Errorf("create opus decoder: %w", err)
	}
	return &Decoder{dec: dec, frameSize: sampleRate * frameMs / 1000}, nil
}

// Decode converts one Opus packet to PCM samples.
func (d *Decoder) Decode(packet []byte) ([]int16, error) {
	pcm := make([]int16, d.frameSize)
	n, err := d.dec.Decode(packet, pcm)
	if err != nil {
		return nil, fmt.Errorf("decode opus packet: %w", err)
	}
	return pcm[:n], nil
}

// WriteFrames writes each packet prefixed by its length as a big-endian
// uint16.
func WriteFrames(w io.Writer, frames [][]byte) error {
	var hdr [2]byte
	for _, f := range frames {
		binary.BigEndian.PutUint16(hdr[:], uint16(len(f)))
		if _, err := w.Write(hdr[:]); err != nil {
			return err
		}
		if _, err := w.Write(f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFrames reads packets written by WriteFrames until EOF.
func ReadFrames(r io.Reader) ([][]byte, error) {
	var frames [][]byte
	var hdr [2]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return nil, fmt.Errorf("read frame header: %w", err)
		}
		f := make([]byte, binary.BigEndian.Uint16(hdr[:]))
		if _, err := io.ReadFull(r, f); err != nil {
			return nil, fmt.Errorf("read frame: %w", err)
		}
		frames = append(frames, f)
	}
}
