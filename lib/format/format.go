/*package format handles the miniature formatting languages used to name
batches of snapshot files, e.g:

   -input "snapdir_{%03d,snapshot}/snap_{%03d,snapshot}.{%d,0..7}"
   -snaps "0..100 - 63"

The exact rules are as follows:
File format strings are a combination of fixed text and variables. Fixed text is
always the same, and variables can change from file to file. Variables are
written as {verb,rule}. "verb" is a printf() verb (e.g. %03d) that specifies
how the variable should be printed. "rule" is text that specifies what values
the variable should take on. There are currently two rules:

  "snapshot" - The variable is equal to the currently-analysed snapshot.
  sequence format - The variable ranges over a user-specified range.

A format with several sequence variables expands to every combination of
their values.

Sequence formats are a generic way to specify non-contiguous sequences of
natural numbers. They consist of a series of n tokens separated by "+" or "-".
Each token can be either a number or two numbers separted by "..". E.g.:

  100
  0..100
  0..10 + 100
  0..100 - 63 - 10..20

These strings build up sequences of numbers by adding/removing individual
numbers and contiguous sequences. For example, 0 through 10 would be 0..10,
1, 2, 3, 15, 16, 17 could be written as  1..17 - 4..13. This is useful for
skipping corrupted snapshots or specifying a subset of snapshots/files.

All spaces around "-", "+", and "," symbols are ignored.
*/
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// Any expanded formats which would have more than BigNumber elements are
	// assumed to be bugs.
	BigNumber = 1<<20
)

// ExpandSequenceFormat expands a sequence format string into a sorted sequence
// of integers.
func ExpandSequenceFormat(format string) ([]int, error) {
	// Parse and error-check the format string.
	tok, err := tokeniseSequenceFormat(format)
	if err != nil { return nil, err }
	adds, subs, err := addsSubsSequenceFormat(tok)
	if err != nil { return nil, err }

	// Add numbers to the sequence.
	m := map[int]int{ }
	for i := range adds {
		ns := parseSequenceFormatToken(adds[i])
		for _, n := range ns {
			if _, ok := m[n]; ok {
				return nil, fmt.Errorf("The number %d is added more than once.", n)
			}
			m[n] = n
		}
	}

	// Remove numbers from the sequence.
	for i := range subs {
		ns := parseSequenceFormatToken(subs[i])
		for _, n := range ns {
			if _, ok := m[n]; !ok {
				return nil, fmt.Errorf("The number %d is removed more times than it was inserted.", n)
			}
			delete(m, n)
		}
	}
	
	if len(m) > BigNumber {
		return nil, fmt.Errorf("This sequence would have %d elements, which is almost certainly a bug.", len(m))
	}

	// Convert to a sorted array of integers.
	out := []int{ }
	for n := range m { out = append(out, n) }
	sort.Ints(out)
	
	return out, nil
}

// tokeniseSequenceFormat splits a sequence format string into numbers, ranges,
// and '+'/'-' operators.
func tokeniseSequenceFormat(format string) ([]string, error) {
	// Make sure all operators are separated by spaces.
	formatClean := strings.ReplaceAll(format, "+", " + ")
	formatClean = strings.ReplaceAll(formatClean, "-", " - ")

	// Tokenize and remove empty tokens.
	tokRaw := strings.Split(formatClean, " ")
	tok := []string{ }
	for i := range tokRaw {
		tokRaw[i] = strings.Trim(tokRaw[i], " ")
		if len(tokRaw[i]) > 0 {
			tok = append(tok, tokRaw[i])
		}
	}
	
	if len(tok) == 0 {
		return nil, fmt.Errorf("The format string is empty.")
	}
	return tok, nil
}

func addsSubsSequenceFormat(tok []string) (adds, subs []string, err error) {
	if len(tok) == 0 {
		return nil, nil, fmt.Errorf("Format string is empty")
	}

	
	// Handle the case where the starting "+" is dropped.
	adds, subs = []string{}, []string{}
	var start int
	if tok[0] == "+" || tok[0] == "-" {
		start = 0
	} else {
		if err := isSequenceFormatToken(tok[0]); err != nil {
			return nil, nil, fmt.Errorf(
				"Element number %d, '%s', cannot be parsed because %s",
				1, tok[0], err.Error(),
			)
		}
		
		adds = append(adds, tok[0])
		start = 1
	}

	for i := start; i < len(tok); i += 2 {
		if tok[i] != "-" && tok[i] != "+" {
			return nil, nil, fmt.Errorf(
				"Element number %d, '%s', should be a '-' or '+', but isn't.",
				i+1, tok[i])
		}

		if i + 1 >= len(tok) {
			return nil, nil, fmt.Errorf(
				"The format string ends in a trailing '%s'", tok[i],
			)
		}

		if err := isSequenceFormatToken(tok[i+1]); err != nil {
			return nil, nil, fmt.Errorf(
				"Element number %d, '%s', cannot be parsed because %s",
				i+2, tok[i+1], err.Error(),
			)
		}
		
		if tok[i] == "+" {
			adds = append(adds, tok[i+1])
		} else {
			subs = append(subs, tok[i+1])
		}
	}

	return adds, subs, nil
}

// isSequenceFormatToken returns a nil error is tok is a valid token for
// a sequence format and an error describing the problem otherwise. The error
// message assumes it is printed after a trailing "beacause"
func isSequenceFormatToken(tok string) error {
	if len(tok) == 0 {
		return fmt.Errorf("the format string is empty.")
	}
	
	bounds := strings.Split(tok, "..")

	switch len(bounds) {
	case 1:
		_, err := strconv.Atoi(bounds[0])
		if err != nil {
			return fmt.Errorf("'%s' is not an integer.", bounds[0])
		}
		return nil
	case 2:
		start, err1 := strconv.Atoi(bounds[0])
		if err1 != nil {
			return fmt.Errorf("'%s' is not an integer.", bounds[0])
		}
		end, err2 := strconv.Atoi(bounds[1])
		if err2 != nil {
			return fmt.Errorf("'%s' is not an integer.", bounds[1])
		}
		if end < start {
			return fmt.Errorf("lower bound %d is larger than upper bound %d.",
				start, end)
		}
		
		return nil
	}
	return fmt.Errorf("it has more than one '..'.")
}

// parseSequenceFormatToken parses a single token in a sequence format string
// and returns the corresponding array of numbers. It assumes the token has
// already passed isSequenceFormatToken.
func parseSequenceFormatToken(tok string) []int {
	bounds := strings.Split(tok, "..")

	switch len(bounds) {
	case 1:
		n, _ := strconv.Atoi(tok)
		return []int{ n }
	case 2:
		start, _ := strconv.Atoi(bounds[0])
		end, _ := strconv.Atoi(bounds[1])
		out := []int{ }
		for n := start; n <= end; n++ {
			out = append(out, n)
		}

		return out
	}

	panic(fmt.Sprintf("Invalid sequence format token, '%s', passed " +
		"isSequenceFormatToken()", tok))
}

// ExpandSnapshotFormat expands the format string specifying which snapshots
// are converted. It takes the same form as ExpandSequenceFormat.
func ExpandSnapshotFormat(format string) ([]int, error) {
	snaps, err := ExpandSequenceFormat(format)
	if err != nil {
		return nil, fmt.Errorf("The snapshot format string, '%s', is not " +
			"valid. %w", format, err)
	}
	return snaps, nil
}

// ExpandFileFormat returns every file name described by format for a single
// snapshot, in the order given by varying the last variable fastest.
func ExpandFileFormat(format string, snapshot int) ([]string, error) {
	starts, ends, err := startsEndsFormatString(format)
	if err != nil { return nil, err }
	comp, err := newFileFormatComponents(format, starts, ends)
	if err != nil { return nil, err }

	names := []string{ "" }
	for i := range comp.vars {
		var vals []int
		if comp.vars[i].rule == "snapshot" {
			vals = []int{ snapshot }
		} else {
			vals = comp.vars[i].values
		}

		next := make([]string, 0, len(names)*len(vals))
		for _, name := range names {
			for _, val := range vals {
				next = append(next, name + comp.separators[i] +
					fmt.Sprintf(comp.vars[i].verb, val))
			}
		}
		names = next

		if len(names) > BigNumber {
			return nil, fmt.Errorf("The file format '%s' expands to more " +
				"than %d files, which is almost certainly a bug.",
				format, BigNumber)
		}
	}

	last := comp.separators[len(comp.separators) - 1]
	for i := range names { names[i] += last }
	return names, nil
}

// ExpandFileFormats calls ExpandFileFormat for every snapshot in snaps and
// concatenates the results.
func ExpandFileFormats(format string, snaps []int) ([]string, error) {
	out := []string{ }
	for _, snap := range snaps {
		names, err := ExpandFileFormat(format, snap)
		if err != nil { return nil, err }
		out = append(out, names...)
	}
	return out, nil
}

// startsEndsFormatString returns the indices of the beginning and end of each
// format variable.
func startsEndsFormatString(format string) (starts, ends []int, err error) {
	starts, ends = []int{ }, []int{ }
	nestedLevel := 0

	ending := "Make sure variables in file formats are enclosed in " +
		"matching { ... } pairs."
	
	for i := range format {
		if format[i] == '{' {
			nestedLevel++
			starts = append(starts, i)
		} else if format[i] == '}' {
			nestedLevel--
			ends = append(ends, i+1)
		}

		if nestedLevel > 1 {
			end := len(starts) - 1
			return nil, nil, fmt.Errorf("The file format '%s' has nested " +
				"'{' characters, making it invalid. These '{'s are at " +
				"indices %d and %d. " + ending,
				format, starts[end - 1], starts[end])
		} else if nestedLevel < 0 {
			end := len(ends) - 1
			return nil, nil, fmt.Errorf("The file format '%s' has a '}' " +
				"that doesn't come after a '{' character, making it " +
				"invalid. This '}' is at index %d. " + ending,
				format, ends[end] - 1)
		}
	}

	if len(ends) != len(starts) {
		end := len(starts) - 1
		return nil, nil, fmt.Errorf("The file format '%s' has a '{' " +
			"without a matching '}', making it invalid. This '{' is at " +
			"index %d. " + ending, format, starts[end])
	}

	return starts, ends, nil
}

// fileFormatVar is a single {verb,rule} variable.
type fileFormatVar struct {
	verb, rule string
	values []int
}

// fileFormatComponents splits a file format into fixed text and variables.
// There is always one more separator than there are variables.
type fileFormatComponents struct {
	separators []string
	vars []fileFormatVar
}

func newFileFormatComponents(
	format string, starts, ends []int,
) (*fileFormatComponents, error) {
	comp := &fileFormatComponents{ }

	sepStart := 0
	for i := range starts {
		comp.separators = append(comp.separators, format[sepStart: starts[i]])
		sepStart = ends[i]

		v := format[starts[i]+1: ends[i]-1]
		base := fmt.Sprintf("The file format '%s' has an invalid variable, " +
			"'{%s}'. Variables should contain a formatting 'verb' (e.g. " +
			"'%%d', '%%03d', etc.), a comma, and an argument giving the " +
			"values that variable takes on (e.g. '0..511', 'snapshot', etc.)",
			format, v)

		tok := strings.SplitN(v, ",", 2)
		if len(tok) != 2 {
			return nil, fmt.Errorf("%s, but there is no comma.", base)
		}
		verb, rule := strings.TrimSpace(tok[0]), strings.TrimSpace(tok[1])
		if !isIntVerb(verb) {
			return nil, fmt.Errorf("%s, but '%s' is not an integer verb.",
				base, verb)
		}

		fv := fileFormatVar{ verb: verb, rule: rule }
		if rule != "snapshot" {
			vals, err := ExpandSequenceFormat(rule)
			if err != nil {
				return nil, fmt.Errorf("%s, but '%s' is not a valid " +
					"sequence: %w", base, rule, err)
			}
			fv.values = vals
		}
		comp.vars = append(comp.vars, fv)
	}
	comp.separators = append(comp.separators, format[sepStart:])

	return comp, nil
}

// isIntVerb returns true if verb is a single printf verb which prints an
// integer, e.g. %d or %03d.
func isIntVerb(verb string) bool {
	if len(verb) < 2 || verb[0] != '%' { return false }
	switch verb[len(verb) - 1] {
	case 'd', 'x', 'X', 'o':
	default:
		return false
	}
	for _, c := range verb[1: len(verb) - 1] {
		if !strings.ContainsRune("0123456789+- ", c) { return false }
	}
	return true
}
