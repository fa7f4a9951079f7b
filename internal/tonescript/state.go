package tonescript

import "math"

// cadenceSpan places one cadence on the tone's timeline. end and period
// are meaningful only when terminal and periodUnbounded are false.
type cadenceSpan struct {
	start           float64
	end             float64
	terminal        bool
	period          float64
	periodUnbounded bool
	sections        []sectionSpan
}

// sectionSpan is a section's offset inside its cadence's period.
type sectionSpan struct {
	start  float64
	length Duration
	on     Duration
}

func buildSpans(cadences []Cadence) []cadenceSpan {
	spans := make([]cadenceSpan, 0, len(cadences))
	var start float64
	for _, c := range cadences {
		span := cadenceSpan{start: start, terminal: c.Duration.Unbounded}
		if !span.terminal {
			span.end = start + c.Duration.Seconds
		}

		var offset Duration
		for _, s := range c.Sections {
			span.sections = append(span.sections, sectionSpan{
				start:  offset.Seconds,
				length: s.length(),
				on:     s.On,
			})
			offset = offset.add(s.length())
		}
		span.period = offset.Seconds
		span.periodUnbounded = offset.Unbounded

		spans = append(spans, span)
		if span.terminal {
			// Nothing after an unbounded cadence is ever reached.
			break
		}
		start = span.end
	}
	return spans
}

// State is where a tone is at a given time.
type State struct {
	Cadence     int     // index into Cadences()
	Section     int     // index into that cadence's Sections
	SectionTime float64 // seconds since the section started
	Sounding    bool
}

// Resolve works out which cadence and section are active at t seconds after
// the tone started. It returns a *TimeOutOfRangeError when t is negative, not
// finite, or past the end of a tone with no unbounded cadence.
func (t *Tone) Resolve(at float64) (State, error) {
	if math.IsNaN(at) || math.IsInf(at, 0) || at < 0 {
		return State{}, &TimeOutOfRangeError{T: at, End: t.Duration()}
	}

	ci := -1
	for i := range t.spans {
		if t.spans[i].terminal || at < t.spans[i].end {
			ci = i
			break
		}
	}
	if ci < 0 {
		return State{}, &TimeOutOfRangeError{T: at, End: t.Duration()}
	}
	span := &t.spans[ci]

	modTime := at - span.start
	if !span.periodUnbounded {
		modTime = math.Mod(modTime, span.period)
	}

	si := len(span.sections) - 1
	for j, s := range span.sections {
		if s.length.Unbounded || modTime < s.start+s.length.Seconds {
			si = j
			break
		}
	}
	sect := span.sections[si]
	sectTime := modTime - sect.start

	return State{
		Cadence:     ci,
		Section:     si,
		SectionTime: sectTime,
		Sounding:    sect.on.Unbounded || sectTime < sect.on.Seconds,
	}, nil
}
