package tonescript

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = errors.New("tonescript: syntax error")
	// ErrTimeOutOfRange matches every *TimeOutOfRangeError.
	ErrTimeOutOfRange = errors.New("tonescript: time out of range")
)

// Rule names the grammar rule a SyntaxError was raised from.
type Rule int

const (
	RuleFrequency Rule = iota + 1
	RuleCadence
	RuleSegment
)

func (r Rule) String() string {
	switch r {
	case RuleFrequency:
		return "frequency"
	case RuleCadence:
		return "cadence"
	case RuleSegment:
		return "segment"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// form is the expected shape of each rule, quoted in error messages.
func (r Rule) form() string {
	switch r {
	case RuleFrequency:
		return "%d@%f[,%d@%f]"
	case RuleCadence:
		return "%f(%f/%f[,%f/%f])"
	case RuleSegment:
		return "%f/%f[/%d[+%d]]"
	default:
		return ""
	}
}

// SyntaxError reports a script that does not match the grammar. Term is
// the offending piece of input text.
type SyntaxError struct {
	Rule   Rule
	Term   string
	Reason string
	Err    error
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("tonescript: %s syntax error in %q: %s (want `%s`)", e.Rule, e.Term, e.Reason, e.Rule.form())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

func syntaxError(rule Rule, term, reason string, err error) *SyntaxError {
	return &SyntaxError{Rule: rule, Term: term, Reason: reason, Err: err}
}

// TimeOutOfRangeError reports a sample time that no cadence covers.
type TimeOutOfRangeError struct {
	T   float64
	End Duration
}

func (e *TimeOutOfRangeError) Error() string {
	return fmt.Sprintf("tonescript: time %gs outside cadence timeline [0, %ss)", e.T, e.End)
}

func (e *TimeOutOfRangeError) Is(target error) bool { return target == ErrTimeOutOfRange }
