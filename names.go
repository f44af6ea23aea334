package grid

import (
	"regexp"
	"strconv"
)

// NeighbourNames are display labels for neighbour indices Right..DownRight.
var NeighbourNames = [numNeighbours]string{
	"Right",
	"Up Right",
	"Up",
	"Up Left",
	"Left",
	"Down Left",
	"Down",
	"Down Right",
}

var innerCapital = regexp.MustCompile(`(\B[A-Z])`)

// FormatName turns an identifier like "WallNorth" into "Wall North".
func FormatName(name string) string {
	return innerCapital.ReplaceAllString(name, " ${1}")
}

// PropertyName returns the formatted label for property `index`, or the index
// itself if the grid has no label for it.
func (g *Grid) PropertyName(index int) string {
	if index >= 0 && index < len(g.names) && g.names[index] != "" {
		return FormatName(g.names[index])
	}
	return strconv.Itoa(index)
}

// PropertyIndex finds a property by its raw or formatted label.
func (g *Grid) PropertyIndex(label string) (int, bool) {
	for i, n := range g.names {
		if n == label || FormatName(n) == label {
			return i, true
		}
	}
	return -1, false
}
