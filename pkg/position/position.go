// Package position converts between rune offsets, as used by the tokenizer
// and the EL model, and zero-based line/column places, as used by editors.
package position

import (
	"fmt"
	"slices"
)

// Place is a zero-based line and column; columns count runes.
type Place struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

func (p Place) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

type Range struct {
	Start Place `json:"start"`
	End   Place `json:"end"`
}

// LineAndColumn returns the place of offset in text. An offset equal to the
// rune count (end of text) is valid.
func LineAndColumn(text string, offset int) (Place, bool) {
	if offset < 0 {
		return Place{}, false
	}

	place := Place{}
	i := 0
	for _, ch := range text {
		if i == offset {
			return place, true
		}
		if ch == '\n' {
			place.Line++
			place.Character = 0
		} else {
			place.Character++
		}
		i++
	}

	if i == offset {
		return place, true
	}
	return Place{}, false
}

// OffsetOf returns the rune offset of a place. The column may point just
// past the last character of its line.
func OffsetOf(text string, place Place) (int, bool) {
	if place.Line < 0 || place.Character < 0 {
		return 0, false
	}

	line, col, offset := 0, 0, 0
	for _, ch := range text {
		if line == place.Line {
			if col == place.Character {
				return offset, true
			}
			if ch == '\n' {
				return 0, false
			}
			col++
		} else if ch == '\n' {
			line++
		}
		offset++
	}

	if line == place.Line && col == place.Character {
		return offset, true
	}
	return 0, false
}

// RangeOf converts an inclusive [start, end] offset range.
func RangeOf(text string, start, end int) (Range, bool) {
	s, ok := LineAndColumn(text, start)
	if !ok {
		return Range{}, false
	}
	e, ok := LineAndColumn(text, end+1)
	if !ok {
		return Range{}, false
	}
	return Range{Start: s, End: e}, true
}

// Lines indexes line starts so many offsets of one text can be converted
// without rescanning it.
type Lines struct {
	starts []int
	size   int
}

func NewLines(source []rune) *Lines {
	starts := []int{0}
	for i, ch := range source {
		if ch == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Lines{starts: starts, size: len(source)}
}

// Place agrees with LineAndColumn on the same text
func (me *Lines) Place(offset int) (Place, bool) {
	if offset < 0 || offset > me.size {
		return Place{}, false
	}
	line, found := slices.BinarySearch(me.starts, offset)
	if !found {
		line--
	}
	return Place{Line: line, Character: offset - me.starts[line]}, true
}

// Count is the number of lines; an empty text has one
func (me *Lines) Count() int {
	return len(me.starts)
}
