package style

import (
	"fmt"
	"strings"
)

// Alignment positions content inside a cell's padded area.
type Alignment int

const (
	Center Alignment = iota
	TopLeading
	Top
	TopTrailing
	Leading
	Trailing
	BottomLeading
	Bottom
	BottomTrailing
)

var alignmentNames = map[Alignment]string{
	Center:         "center",
	TopLeading:     "topLeading",
	Top:            "top",
	TopTrailing:    "topTrailing",
	Leading:        "leading",
	Trailing:       "trailing",
	BottomLeading:  "bottomLeading",
	Bottom:         "bottom",
	BottomTrailing: "bottomTrailing",
}

func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// ParseAlignment accepts the names produced by String, case-insensitively.
func ParseAlignment(s string) (Alignment, error) {
	s = strings.TrimSpace(s)
	for a, name := range alignmentNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	return Center, fmt.Errorf("unknown alignment %q", s)
}

// Fractions returns the horizontal and vertical position of the alignment as
// fractions of the free space: 0 is leading/top, 0.5 centered, 1 trailing/bottom.
func (a Alignment) Fractions() (fx, fy float64) {
	switch a {
	case TopLeading:
		return 0, 0
	case Top:
		return 0.5, 0
	case TopTrailing:
		return 1, 0
	case Leading:
		return 0, 0.5
	case Trailing:
		return 1, 0.5
	case BottomLeading:
		return 0, 1
	case Bottom:
		return 0.5, 1
	case BottomTrailing:
		return 1, 1
	default:
		return 0.5, 0.5
	}
}
