package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/codec"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/metrics"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/model"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/tonescript"
)

const (
	headerSampleRate = "X-Sample-Rate"
	headerFrameMs    = "X-Opus-Frame-Ms"

	formatPCM  = "pcm"
	formatWAV  = "wav"
	formatOpus = "opus"
)

// GetSample handles GET /v1/tones/{toneId}/sample?t=.
func (h *Handlers) GetSample(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}

	t, err := strconv.ParseFloat(r.URL.Query().Get("t"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: t must be a number of seconds")
		return
	}

	v, err := e.Generator(t)
	if err != nil {
		if errors.Is(err, tonescript.ErrTimeOutOfRange) {
			metrics.TimeOutOfRangeTotal.Inc()
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.Error("sample failed", zap.String("tone", e.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "sample failed")
		return
	}

	writeJSON(w, http.StatusOK, model.SampleResponse{T: t, Value: v})
}

// GetAudio handles GET /v1/tones/{toneId}/audio?seconds=&format=.
func (h *Handlers) GetAudio(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	logger := h.logger.With(zap.String("tone", e.ID))

	seconds := 1.0
	if s := r.URL.Query().Get("seconds"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !(f > 0) {
			writeError(w, http.StatusBadRequest, "invalid request: seconds must be positive")
			return
		}
		seconds = f
	}
	if seconds > h.cfg.MaxRenderSec {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: seconds exceeds %gs", h.cfg.MaxRenderSec))
		return
	}
	if d := e.Tone.Duration(); !d.Unbounded && seconds > d.Seconds {
		metrics.TimeOutOfRangeTotal.Inc()
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("tone lasts %ss, %gs requested", d, seconds))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatPCM
	}

	start := time.Now()
	var err error
	switch format {
	case formatPCM:
		err = h.writePCM(w, e, seconds)
	case formatWAV:
		err = h.writeWAV(w, e, seconds)
	case formatOpus:
		err = h.writeOpus(w, e, seconds)
	default:
		writeError(w, http.StatusBadRequest, "invalid request: format must be pcm, wav or opus")
		return
	}
	if err != nil {
		logger.Error("render failed", zap.String("format", format), zap.Error(err))
		return
	}

	metrics.RendersTotal.WithLabelValues(format).Inc()
	metrics.RenderLatency.WithLabelValues(format).Observe(millisSince(start))
	logger.Debug("rendered", zap.String("format", format), zap.Float64("seconds", seconds))
}

func (h *Handlers) numSamples(seconds float64) int {
	return int(seconds * float64(h.cfg.SampleRate))
}

// writePCM streams s16le mono samples in pooled chunks.
func (h *Handlers) writePCM(w http.ResponseWriter, e *catalog.Entry, seconds float64) error {
	total := h.numSamples(seconds)

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(total*2))
	w.Header().Set(headerSampleRate, strconv.Itoa(h.cfg.SampleRate))
	w.WriteHeader(http.StatusOK)

	bufs := audio.AcquireRenderBuffers()
	defer audio.ReleaseRenderBuffers(bufs)

	for off := 0; off < total; off += audio.ChunkSamples {
		n := total - off
		if n > audio.ChunkSamples {
			n = audio.ChunkSamples
		}
		samples, err := audio.RenderInto(e.Generator, off, bufs.Samples[:n], h.cfg.SampleRate)
		if err != nil {
			return err
		}
		if _, err := w.Write(audio.Int16ToBytesInto(samples, bufs.Bytes)); err != nil {
			return err
		}
		metrics.SamplesRenderedTotal.Add(float64(len(samples)))
	}
	return nil
}

func (h *Handlers) writeWAV(w http.ResponseWriter, e *catalog.Entry, seconds float64) error {
	d := time.Duration(seconds * float64(time.Second))
	data, err := audio.EncodeWAV(e.Generator, h.cfg.SampleRate, d)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render failed")
		return err
	}
	metrics.SamplesRenderedTotal.Add(float64((len(data) - 44) / 2))

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

func (h *Handlers) writeOpus(w http.ResponseWriter, e *catalog.Entry, seconds float64) error {
	pcm, err := audio.Render(e.Generator, seconds, h.cfg.SampleRate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render failed")
		return err
	}
	metrics.SamplesRenderedTotal.Add(float64(len(pcm)))

	enc, err := codec.NewEncoder(h.cfg.SampleRate, h.cfg.OpusFrameMs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encoder unavailable")
		return err
	}
	frames, err := enc.Encode(pcm)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode failed")
		return err
	}

	var buf bytes.Buffer
	if err := codec.WriteFrames(&buf, frames); err != nil {
		writeError(w, http.StatusInternalServerError, "encode failed")
		return err
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set(headerSampleRate, strconv.Itoa(h.cfg.SampleRate))
	w.Header().Set(headerFrameMs, strconv.Itoa(h.cfg.OpusFrameMs))
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

// millisSince reports elapsed time in fractional milliseconds.
func millisSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
