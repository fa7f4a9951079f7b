package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/model"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/tonescript"
)

// ListPresets handles GET /v1/presets.
func (h *Handlers) ListPresets(w http.ResponseWriter, r *http.Request) {
	names := tonescript.PresetNames()
	resp := model.PresetsResponse{Presets: make([]model.Preset, 0, len(names))}
	for _, name := range names {
		script, _ := tonescript.Preset(name)
		resp.Presets = append(resp.Presets, model.Preset{Name: name, Script: script})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ParseScript handles POST /v1/parse. It validates a script without
// registering it; an invalid script is a 400 carrying valid=false and the
// failing rule.
func (h *Handlers) ParseScript(w http.ResponseWriter, r *http.Request) {
	var req model.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tone, err := catalog.Parse(req.Script)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ParseResponse{Error: syntaxErrorBody(err)})
		return
	}

	d := tone.Duration()
	writeJSON(w, http.StatusOK, model.ParseResponse{
		Valid:       true,
		Canonical:   tone.String(),
		Duration:    &d,
		Frequencies: tone.Frequencies(),
		Cadences:    tone.Cadences(),
	})
}

// CreateTone handles POST /v1/tones.
func (h *Handlers) CreateTone(w http.ResponseWriter, r *http.Request) {
	var req model.CreateToneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Preset != "" && req.Script != "" {
		writeError(w, http.StatusBadRequest, "invalid request: script and preset are mutually exclusive")
		return
	}

	script := req.Script
	if req.Preset != "" {
		s, ok := tonescript.Preset(req.Preset)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown preset: "+req.Preset)
			return
		}
		script = s
	}
	if script == "" {
		writeError(w, http.StatusBadRequest, "invalid request: script or preset required")
		return
	}
	if req.UnitAmplitude < 0 {
		writeError(w, http.StatusBadRequest, "invalid request: unitAmplitude must not be negative")
		return
	}

	amp := req.UnitAmplitude
	if amp == 0 {
		amp = h.cfg.UnitAmplitude
	}

	e, err := h.catalog.Add(script, amp)
	switch {
	case errors.Is(err, tonescript.ErrSyntax):
		writeJSON(w, http.StatusBadRequest, syntaxErrorBody(err))
		return
	case errors.Is(err, catalog.ErrCatalogFull):
		writeError(w, http.StatusServiceUnavailable, "max tones reached")
		return
	case err != nil:
		h.logger.Error("create tone failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create tone failed")
		return
	}

	writeJSON(w, http.StatusCreated, toneResponse(e))
}

// ListTones handles GET /v1/tones.
func (h *Handlers) ListTones(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.List()
	resp := model.ListTonesResponse{Tones: make([]model.ToneResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Tones = append(resp.Tones, toneResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTone handles GET /v1/tones/{toneId}.
func (h *Handlers) GetTone(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toneResponse(e))
}

// DeleteTone handles DELETE /v1/tones/{toneId}.
func (h *Handlers) DeleteTone(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Delete(chi.URLParam(r, "toneId")) {
		writeError(w, http.StatusNotFound, "tone not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*catalog.Entry, bool) {
	e, err := h.catalog.Get(chi.URLParam(r, "toneId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "tone not found")
		return nil, false
	}
	return e, true
}

func toneResponse(e *catalog.Entry) model.ToneResponse {
	return model.ToneResponse{
		ToneID:        e.ID,
		Script:        e.Script,
		Canonical:     e.Tone.String(),
		UnitAmplitude: e.UnitAmplitude,
		Duration:      e.Tone.Duration(),
		Frequencies:   e.Tone.Frequencies(),
		Cadences:      e.Tone.Cadences(),
		CreatedAt:     e.CreatedAt,
	}
}
