package tonescript

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseDialTone(t *testing.T) {
	tone, err := Parse("350@-19,440@-19;10(*/0/1+2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFreqs := []FrequencyComponent{{350, -19}, {440, -19}}
	if got := tone.Frequencies(); !reflect.DeepEqual(got, wantFreqs) {
		t.Errorf("frequencies: expected %v, got %v", wantFreqs, got)
	}

	wantCads := []Cadence{{
		Duration: Seconds(10),
		Sections: []Section{{On: Forever, Off: Seconds(0), FrequencyIndices: []int{0, 1}}},
	}}
	if got := tone.Cadences(); !reflect.DeepEqual(got, wantCads) {
		t.Errorf("cadences: expected %+v, got %+v", wantCads, got)
	}
}

func TestParseMultipleCadences(t *testing.T) {
	tone, err := Parse("350@-19,440@-19;2(.1/.1/1+2);*(*/0/2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cads := tone.Cadences()
	if len(cads) != 2 {
		t.Fatalf("expected 2 cadences, got %d", len(cads))
	}
	if cads[0].Duration != Seconds(2) {
		t.Errorf("cadence 0 duration: got %v", cads[0].Duration)
	}
	if !cads[1].Duration.Unbounded {
		t.Errorf("cadence 1 should be unbounded, got %v", cads[1].Duration)
	}
	if got := cads[1].Sections[0].FrequencyIndices; !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("cadence 1 refs: expected [1], got %v", got)
	}
}

func TestParseSilentSegment(t *testing.T) {
	tone, err := Parse("440@-10;2(1/1)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := tone.Cadences()[0].Sections[0]
	if s.On != Seconds(1) || s.Off != Seconds(1) || len(s.FrequencyIndices) != 0 {
		t.Errorf("unexpected section %+v", s)
	}
}

func TestParseExactLevels(t *testing.T) {
	tone := MustParse("1209@-6.25,697@3.5;*(1/0/1+2)")
	want := []FrequencyComponent{{1209, -6.25}, {697, 3.5}}
	if got := tone.Frequencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseSkipsEmptyCadenceTerms(t *testing.T) {
	tone, err := Parse("440@-10;;1(1/0/1);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(tone.Cadences()); n != 1 {
		t.Errorf("expected 1 cadence, got %d", n)
	}
}

func TestParsePlainDecimals(t *testing.T) {
	tone, err := Parse("440@+3;1.(.5/0.5/1)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tone.Frequencies()[0].Decibels; got != 3 {
		t.Errorf("expected level 3, got %g", got)
	}
	s := tone.Cadences()[0]
	if s.Duration != Seconds(1) || s.Sections[0].On != Seconds(0.5) {
		t.Errorf("unexpected cadence %+v", s)
	}
}

func TestParseOutOfRangeReferenceIsAccepted(t *testing.T) {
	if _, err := Parse("440@-10;*(1/1/3)"); err != nil {
		t.Errorf("unused reference should parse, got %v", err)
	}
}

func TestParseDeterministic(t *testing.T) {
	for _, name := range PresetNames() {
		script, _ := Preset(name)
		a := MustParse(script)
		b := MustParse(script)
		if !reflect.DeepEqual(a.Frequencies(), b.Frequencies()) || !reflect.DeepEqual(a.Cadences(), b.Cadences()) {
			t.Errorf("preset %s parsed differently twice", name)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		rule   Rule
	}{
		{"missing at", "440-10;1(1/1)", RuleFrequency},
		{"two ats", "440@-10@3;1(1/1)", RuleFrequency},
		{"float frequency", "440.5@-10;1(1/1)", RuleFrequency},
		{"zero frequency", "0@-10;1(1/1)", RuleFrequency},
		{"bad level", "440@loud;1(1/1)", RuleFrequency},
		{"empty frequency list", ";1(1/1)", RuleFrequency},
		{"no cadence", "440@-10", RuleCadence},
		{"missing group", "440@-10;10", RuleCadence},
		{"trailing junk", "440@-10;10(1/1)x", RuleCadence},
		{"bad cadence duration", "440@-10;ten(1/1)", RuleCadence},
		{"negative cadence duration", "440@-10;-1(1/1)", RuleCadence},
		{"two groups", "440@-10;10(1/1)(2/2)", RuleCadence},
		{"zero period", "440@-10;10(0/0)", RuleCadence},
		{"four fields", "440@-10;10(1/1/1/1)", RuleSegment},
		{"one field", "440@-10;10(1)", RuleSegment},
		{"empty group", "440@-10;10()", RuleSegment},
		{"bad on", "440@-10;10(./1)", RuleSegment},
		{"bad reference", "440@-10;10(1/1/1.5)", RuleSegment},
		{"empty reference", "440@-10;10(1/1/)", RuleSegment},
		{"dangling plus", "440@-10;10(1/1/1+)", RuleSegment},
		{"hex cadence duration", "440@0;0x1p1(1/0/1)", RuleCadence},
		{"exponent cadence duration", "440@0;1e1(1/0/1)", RuleCadence},
		{"infinite cadence duration", "440@0;Inf(1/0/1)", RuleCadence},
		{"hex level", "440@0x1p-2;1(1/1)", RuleFrequency},
		{"exponent level", "440@1e1;1(1/1)", RuleFrequency},
		{"infinite level", "440@-inf;1(1/1)", RuleFrequency},
		{"signed frequency", "+350@0;1(1/1)", RuleFrequency},
		{"hex frequency", "0x1b8@0;1(1/1)", RuleFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tone, err := Parse(tt.script)
			if err == nil {
				t.Fatalf("expected error for %q", tt.script)
			}
			if tone != nil {
				t.Error("expected no partial tone on error")
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if se.Rule != tt.rule {
				t.Errorf("expected %s rule, got %s (%v)", tt.rule, se.Rule, err)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Error("expected errors.Is(err, ErrSyntax)")
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	scripts := []string{
		"350@-19,440@-19;10(*/0/1+2)",
		"480@-24,620@-24;10(.5/.5/1+2)",
		"440@-10;2(1/1);*(.25/0.75/1,1/*)",
	}
	for _, script := range scripts {
		a := MustParse(script)
		b, err := Parse(a.String())
		if err != nil {
			t.Fatalf("reparse of %q failed: %v", a.String(), err)
		}
		if !reflect.DeepEqual(a.Frequencies(), b.Frequencies()) || !reflect.DeepEqual(a.Cadences(), b.Cadences()) {
			t.Errorf("%q: round trip through %q changed the tone", script, a.String())
		}
	}

	if got := MustParse("350@-19,440@-19;10(*/0/1+2)").String(); got != "350@-19,440@-19;10(*/0/1+2)" {
		t.Errorf("unexpected canonical form %q", got)
	}
}

func TestCadencesReturnsCopy(t *testing.T) {
	tone := MustParse("350@-19,440@-19;10(*/0/1+2)")
	cads := tone.Cadences()
	cads[0].Sections[0].FrequencyIndices[0] = 7
	cads[0].Duration = Forever

	again := tone.Cadences()
	if again[0].Sections[0].FrequencyIndices[0] != 0 || again[0].Duration.Unbounded {
		t.Error("mutating the returned cadences changed the tone")
	}

	freqs := tone.Frequencies()
	freqs[0].Frequency = 1
	if tone.Frequencies()[0].Frequency != 350 {
		t.Error("mutating the returned frequencies changed the tone")
	}
}

func TestToneDuration(t *testing.T) {
	if d := MustParse("440@0;2(1/1);3(1/1)").Duration(); d != Seconds(5) {
		t.Errorf("expected 5s, got %v", d)
	}
	if d := MustParse("440@0;2(1/1);*(1/1)").Duration(); !d.Unbounded {
		t.Errorf("expected unbounded, got %v", d)
	}
}

func TestPresetsParse(t *testing.T) {
	for _, name := range PresetNames() {
		script, ok := Preset(name)
		if !ok {
			t.Fatalf("preset %s listed but missing", name)
		}
		if _, err := Parse(script); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
	if _, ok := Preset("nope"); ok {
		t.Error("unknown preset should not resolve")
	}
}

func TestCadencesJSON(t *testing.T) {
	cads := MustParse("440@0;*(.5/.5/1,1/*)").Cadences()
	b, err := json.Marshal(cads)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"duration":"*","sections":[{"on":0.5,"off":0.5,"frequencyIndices":[0]},{"on":1,"off":"*"}]}]`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}

	var back []Cadence
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, cads) {
		t.Errorf("expected %+v, got %+v", cads, back)
	}
}
