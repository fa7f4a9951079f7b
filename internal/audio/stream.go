package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/orcaman/writerseeker"

	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/tonescript"
)

// toneStreamer plays a generator as a beep.Streamer for a fixed duration.
type toneStreamer struct {
	gen      tonescript.Generator
	rate     beep.SampleRate
	position int
	total    int
	err      error
}

// NewStreamer wraps gen as a beep.Streamer that stops after d. The mono
// signal is copied to both channels. A generator error ends the stream and
// is reported by Err.
func NewStreamer(gen tonescript.Generator, rate beep.SampleRate, d time.Duration) beep.Streamer {
	return &toneStreamer{
		gen:   gen,
		rate:  rate,
		total: rate.N(d),
	}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}

		v, err := s.gen(float64(s.position) / float64(s.rate))
		if err != nil {
			s.err = err
			return i, i > 0
		}

		samples[i][0] = v
		samples[i][1] = v
		s.position++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return s.err }

// EncodeWAV renders d of gen as a 16-bit mono WAV file.
func EncodeWAV(gen tonescript.Generator, sampleRate int, d time.Duration) ([]byte, error) {
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	s := NewStreamer(gen, format.SampleRate, d)

	ws := &writerseeker.WriterSeeker{}
	if err := wav.Encode(ws, s, format); err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("render wav: %w", err)
	}
	return io.ReadAll(ws.Reader())
}
