package tonescript

import "math"

// DefaultUnitAmplitude is the peak of a 0 dB component.
const DefaultUnitAmplitude = 0.2

// Generator returns the signal value t seconds after the tone started.
type Generator func(t float64) (float64, error)

// NewGenerator returns a Generator for tone. A unitAmplitude of zero selects
// DefaultUnitAmplitude. The generator keeps no state between calls and is
// safe for concurrent use.
func NewGenerator(tone *Tone, unitAmplitude float64) Generator {
	if unitAmplitude == 0 {
		unitAmplitude = DefaultUnitAmplitude
	}

	gains := make([]float64, len(tone.frequencies))
	omegas := make([]float64, len(tone.frequencies))
	for i, f := range tone.frequencies {
		gains[i] = math.Pow(10, f.Decibels/20) * unitAmplitude
		omegas[i] = 2 * math.Pi * float64(f.Frequency)
	}

	return func(t float64) (float64, error) {
		st, err := tone.Resolve(t)
		if err != nil {
			return 0, err
		}
		if !st.Sounding {
			return 0, nil
		}

		var v float64
		for _, i := range tone.cadences[st.Cadence].Sections[st.Section].FrequencyIndices {
			if i < 0 || i >= len(gains) {
				continue
			}
			// Global t keeps components phase-coherent across sections.
			v += gains[i] * math.Sin(omegas[i]*t)
		}
		return v, nil
	}
}
