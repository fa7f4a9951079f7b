package tonescript

import "sort"

// presets are common North American call-progress tones.
var presets = map[string]string{
	"dial":          "350@-19,440@-19;10(*/0/1+2)",
	"busy":          "480@-24,620@-24;10(.5/.5/1+2)",
	"ringback":      "440@-19,480@-19;*(2/4/1+2)",
	"reorder":       "480@-24,620@-24;10(.25/.25/1+2)",
	"stutter-dial":  "350@-19,440@-19;2(.1/.1/1+2);10(*/0/1+2)",
	"call-waiting":  "440@-10;30(.3/9.7/1)",
	"confirmation":  "350@-19,440@-19;*(.1/.1/1+2,.1/.1/1+2,.1/*/1+2)",
	"off-hook-warn": "1400@0,2060@0,2450@0,2600@0;*(.1/.1/1+2+3+4)",
}

// Preset returns the script registered under name.
func Preset(name string) (string, bool) {
	s, ok := presets[name]
	return s, ok
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
