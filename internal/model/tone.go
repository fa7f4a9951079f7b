package model

import (
	"time"

	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/tonescript"
)

type CreateToneRequest struct {
	Script        string  `json:"script,omitempty"`
	Preset        string  `json:"preset,omitempty"`
	UnitAmplitude float64 `json:"unitAmplitude,omitempty"`
}

type ToneResponse struct {
	ToneID        string                          `json:"toneId"`
	Script        string                          `json:"script"`
	Canonical     string                          `json:"canonical"`
	UnitAmplitude float64                         `json:"unitAmplitude"`
	Duration      tonescript.Duration             `json:"duration"`
	Frequencies   []tonescript.FrequencyComponent `json:"frequencies"`
	Cadences      []tonescript.Cadence            `json:"cadences"`
	CreatedAt     time.Time                       `json:"createdAt"`
}

type ListTonesResponse struct {
	Tones []ToneResponse `json:"tones"`
}

type ParseRequest struct {
	Script string `json:"script"`
}

type ParseResponse struct {
	Valid       bool                            `json:"valid"`
	Canonical   string                          `json:"canonical,omitempty"`
	Duration    *tonescript.Duration            `json:"duration,omitempty"`
	Frequencies []tonescript.FrequencyComponent `json:"frequencies,omitempty"`
	Cadences    []tonescript.Cadence            `json:"cadences,omitempty"`
	Error       *ErrorResponse                  `json:"error,omitempty"`
}

type SampleResponse struct {
	T     float64 `json:"t"`
	Value float64 `json:"value"`
}

type Preset struct {
	Name   string `json:"name"`
	Script string `json:"script"`
}

type PresetsResponse struct {
	Presets []Preset `json:"presets"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Rule  string `json:"rule,omitempty"`
	Term  string `json:"term,omitempty"`
}
