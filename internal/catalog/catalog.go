package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/metrics"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/tonescript"
)

var (
	ErrCatalogFull = errors.New("catalog full")
	ErrNotFound    = errors.New("tone not found")
)

// Entry is a parsed tone and the generator built from it.
type Entry struct {
	ID            string
	Script        string
	UnitAmplitude float64
	Tone          *tonescript.Tone
	Generator     tonescript.Generator
	CreatedAt     time.Time
}

// Catalog holds parsed tones keyed by id.
type Catalog struct {
	maxTones int
	logger   *zap.Logger

	mu    sync.RWMutex
	tones map[string]*Entry
}

// New creates a catalog holding at most maxTones entries.
func New(maxTones int, logger *zap.Logger) *Catalog {
	return &Catalog{
		maxTones: maxTones,
		logger:   logger,
		tones:    make(map[string]*Entry),
	}
}

// Parse parses script and records the outcome in metrics.
func Parse(script string) (*tonescript.Tone, error) {
	tone, err := tonescript.Parse(script)
	if err != nil {
		var se *tonescript.SyntaxError
		if errors.As(err, &se) {
			metrics.ParsesTotal.WithLabelValues(se.Rule.String()).Inc()
		}
		return nil, err
	}
	metrics.ParsesTotal.WithLabelValues("ok").Inc()
	return tone, nil
}

// Add parses script and registers it under a new id.
func (c *Catalog) Add(script string, unitAmplitude float64) (*Entry, error) {
	tone, err := Parse(script)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if unitAmplitude == 0 {
		unitAmplitude = tonescript.DefaultUnitAmplitude
	}

	e := &Entry{
		ID:            uuid.New().String(),
		Script:        script,
		UnitAmplitude: unitAmplitude,
		Tone:          tone,
		Generator:     tonescript.NewGenerator(tone, unitAmplitude),
		CreatedAt:     time.Now(),
	}

	c.mu.Lock()
	if len(c.tones) >= c.maxTones {
		c.mu.Unlock()
		metrics.TonesRejectedTotal.Inc()
		c.logger.Warn("tone cap reached", zap.Int("max", c.maxTones))
		return nil, ErrCatalogFull
	}
	c.tones[e.ID] = e
	c.mu.Unlock()

	metrics.TonesRegistered.Inc()
	c.logger.Info("tone registered", zap.String("tone", e.ID), zap.String("script", tone.String()))
	return e, nil
}

// Get returns the entry for id.
func (c *Catalog) Get(id string) (*Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.tones[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// Delete removes id and reports whether it was present.
func (c *Catalog) Delete(id string) bool {
	c.mu.Lock()
	_, ok := c.tones[id]
	delete(c.tones, id)
	c.mu.Unlock()

	if ok {
		metrics.TonesRegistered.Dec()
		c.logger.Info("tone deleted", zap.String("tone", id))
	}
	return ok
}

// List returns all entries, oldest first.
func (c *Catalog) List() []*Entry {
	c.mu.RLock()
	out := make([]*Entry, 0, len(c.tones))
	for _, e := range c.tones {
		out = append(out, e)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count returns the current number of entries.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tones)
}
