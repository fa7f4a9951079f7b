// Package tonescript parses ToneScript call-progress tone descriptions and
// turns them into sample generators.
//
// A script is a frequency list followed by one or more cadences:
//
//	350@-19,440@-19;10(*/0/1+2)
//
// declares two components (350 Hz and 440 Hz at -19 dB) and one cadence that
// lasts 10 seconds and sounds both components continuously. Segments take the
// form on/off[/refs], where refs are 1-based component numbers joined by '+'
// and '*' stands for an unbounded duration.
package tonescript
