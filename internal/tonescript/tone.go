package tonescript

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Duration is a length of time in seconds that may be unbounded ("*" in a
// script). Unbounded durations never take part in arithmetic.
type Duration struct {
	Seconds   float64
	Unbounded bool
}

// Forever is the unbounded duration.
var Forever = Duration{Unbounded: true}

// Seconds returns a bounded duration of s seconds.
func Seconds(s float64) Duration {
	return Duration{Seconds: s}
}

func (d Duration) add(o Duration) Duration {
	if d.Unbounded || o.Unbounded {
		return Forever
	}
	return Duration{Seconds: d.Seconds + o.Seconds}
}

// String formats d the way a script writes it.
func (d Duration) String() string {
	if d.Unbounded {
		return "*"
	}
	return formatFloat(d.Seconds)
}

// MarshalJSON encodes bounded durations as seconds and Forever as "*".
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.Unbounded {
		return []byte(`"*"`), nil
	}
	return []byte(formatFloat(d.Seconds)), nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == `"*"` {
		*d = Forever
		return nil
	}
	var s float64
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = Seconds(s)
	return nil
}

// FrequencyComponent is one sine ingredient of a tone.
type FrequencyComponent struct {
	Frequency int     `json:"frequency"`
	Decibels  float64 `json:"decibels"`
}

// Section is one on/off step of a cadence. FrequencyIndices are 0-based
// positions into the tone's frequency list; an empty list is silence.
type Section struct {
	On               Duration `json:"on"`
	Off              Duration `json:"off"`
	FrequencyIndices []int    `json:"frequencyIndices,omitempty"`
}

func (s Section) length() Duration {
	return s.On.add(s.Off)
}

// Cadence is a repeating list of sections that plays for Duration.
type Cadence struct {
	Duration Duration  `json:"duration"`
	Sections []Section `json:"sections"`
}

// Tone is a parsed ToneScript. It is immutable: accessors hand out copies,
// so a Tone may be shared between goroutines freely.
type Tone struct {
	frequencies []FrequencyComponent
	cadences    []Cadence
	spans       []cadenceSpan
}

func newTone(frequencies []FrequencyComponent, cadences []Cadence) *Tone {
	return &Tone{
		frequencies: frequencies,
		cadences:    cadences,
		spans:       buildSpans(cadences),
	}
}

// Frequencies returns a copy of the tone's frequency components.
func (t *Tone) Frequencies() []FrequencyComponent {
	out := make([]FrequencyComponent, len(t.frequencies))
	copy(out, t.frequencies)
	return out
}

// Cadences returns a deep copy of the tone's cadences.
func (t *Tone) Cadences() []Cadence {
	out := make([]Cadence, len(t.cadences))
	for i, c := range t.cadences {
		sections := make([]Section, len(c.Sections))
		for j, s := range c.Sections {
			sections[j] = Section{
				On:               s.On,
				Off:              s.Off,
				FrequencyIndices: append([]int(nil), s.FrequencyIndices...),
			}
		}
		out[i] = Cadence{Duration: c.Duration, Sections: sections}
	}
	return out
}

// Duration returns the length of the whole cadence list, or Forever when
// any cadence is unbounded.
func (t *Tone) Duration() Duration {
	var total Duration
	for _, c := range t.cadences {
		total = total.add(c.Duration)
	}
	return total
}

// String returns the canonical script for t. Parsing it yields a tone
// equal to t.
func (t *Tone) String() string {
	var b strings.Builder
	for i, f := range t.frequencies {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(f.Frequency))
		b.WriteByte('@')
		b.WriteString(formatFloat(f.Decibels))
	}
	for _, c := range t.cadences {
		b.WriteByte(';')
		b.WriteString(c.Duration.String())
		b.WriteByte('(')
		for j, s := range c.Sections {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s.On.String())
			b.WriteByte('/')
			b.WriteString(s.Off.String())
			for k, idx := range s.FrequencyIndices {
				if k == 0 {
					b.WriteByte('/')
				} else {
					b.WriteByte('+')
				}
				b.WriteString(strconv.Itoa(idx + 1))
			}
		}
		b.WriteByte(')')
	}
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
