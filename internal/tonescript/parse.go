package tonescript

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// cadencePattern matches the segment group that must close a cadence term.
var cadencePattern = regexp.MustCompile(`\(([0-9/.,*+]*)\)$`)

// Numbers are plain decimals: no exponent, hex or underscore forms.
var (
	integerPattern = regexp.MustCompile(`^[0-9]+$`)
	realPattern    = regexp.MustCompile(`^([0-9]+\.?[0-9]*|\.[0-9]+)$`)
	levelPattern   = regexp.MustCompile(`^[-+]?([0-9]+\.?[0-9]*|\.[0-9]+)$`)
)

var errNotDecimal = errors.New("not a plain decimal number")

// Parse converts a ToneScript such as "350@-19,440@-19;10(*/0/1+2)" into a
// Tone. It returns a *SyntaxError naming the failing rule and never a
// partial result.
func Parse(script string) (*Tone, error) {
	parts := strings.Split(script, ";")

	frequencies, err := parseFrequencies(parts[0])
	if err != nil {
		return nil, err
	}

	cadences, err := parseCadences(strings.Join(parts[1:], ";"))
	if err != nil {
		return nil, err
	}

	return newTone(frequencies, cadences), nil
}

// MustParse is like Parse but panics on error.
func MustParse(script string) *Tone {
	t, err := Parse(script)
	if err != nil {
		panic(err)
	}
	return t
}

func parseFrequencies(text string) ([]FrequencyComponent, error) {
	terms := strings.Split(text, ",")
	out := make([]FrequencyComponent, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		fields := strings.Split(term, "@")
		if len(fields) != 2 {
			return nil, syntaxError(RuleFrequency, term, "want exactly one '@'", nil)
		}

		hz, err := parseInt(fields[0])
		if err != nil {
			return nil, syntaxError(RuleFrequency, term, "frequency is not an integer", err)
		}
		if hz <= 0 {
			return nil, syntaxError(RuleFrequency, term, "frequency must be positive", nil)
		}

		db, err := parseReal(levelPattern, fields[1])
		if err != nil {
			return nil, syntaxError(RuleFrequency, term, "level is not a number", err)
		}

		out = append(out, FrequencyComponent{Frequency: hz, Decibels: db})
	}
	return out, nil
}

func parseCadences(text string) ([]Cadence, error) {
	var out []Cadence
	for _, term := range strings.Split(text, ";") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		loc := cadencePattern.FindStringSubmatchIndex(term)
		if loc == nil {
			return nil, syntaxError(RuleCadence, term, "missing trailing segment group", nil)
		}

		duration, err := parseDuration(term[:loc[0]])
		if err != nil {
			return nil, syntaxError(RuleCadence, term, "bad cadence duration", err)
		}

		sections, err := parseSegments(term[loc[2]:loc[3]])
		if err != nil {
			return nil, err
		}

		period := Duration{}
		for _, s := range sections {
			period = period.add(s.length())
		}
		if !period.Unbounded && period.Seconds == 0 {
			return nil, syntaxError(RuleCadence, term, "sections have zero total length", nil)
		}

		out = append(out, Cadence{Duration: duration, Sections: sections})
	}
	if len(out) == 0 {
		return nil, syntaxError(RuleCadence, text, "no cadence", nil)
	}
	return out, nil
}

func parseSegments(text string) ([]Section, error) {
	segments := strings.Split(text, ",")
	out := make([]Section, 0, len(segments))
	for _, segment := range segments {
		fields := strings.Split(segment, "/")
		if len(fields) > 3 {
			return nil, syntaxError(RuleSegment, segment, "too many '/' fields", nil)
		}
		if len(fields) < 2 {
			return nil, syntaxError(RuleSegment, segment, "missing off duration", nil)
		}

		on, err := parseDuration(fields[0])
		if err != nil {
			return nil, syntaxError(RuleSegment, segment, "bad on duration", err)
		}
		off, err := parseDuration(fields[1])
		if err != nil {
			return nil, syntaxError(RuleSegment, segment, "bad off duration", err)
		}

		s := Section{On: on, Off: off}
		if len(fields) == 3 {
			for _, piece := range strings.Split(fields[2], "+") {
				n, err := parseInt(piece)
				if err != nil {
					return nil, syntaxError(RuleSegment, segment, "frequency reference is not an integer", err)
				}
				// 1-based in scripts.
				s.FrequencyIndices = append(s.FrequencyIndices, n-1)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func parseDuration(text string) (Duration, error) {
	if text == "*" {
		return Forever, nil
	}
	f, err := parseReal(realPattern, text)
	if err != nil {
		return Duration{}, err
	}
	return Seconds(f), nil
}

func parseInt(text string) (int, error) {
	if !integerPattern.MatchString(text) {
		return 0, errNotDecimal
	}
	return strconv.Atoi(text)
}

func parseReal(pattern *regexp.Regexp, text string) (float64, error) {
	if !pattern.MatchString(text) {
		return 0, errNotDecimal
	}
	return strconv.ParseFloat(text, 64)
}
