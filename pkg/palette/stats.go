package palette

import (
	"sort"
	"strings"

	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/source"
)

// Usage records how often one color appears in a placement list.
type Usage struct {
	Color source.RGB
	Name  string
	Count int
	Share float64 // fraction of the total placement count, in [0, 1]
}

// Summarize tallies color usage over a placement list, most used first.
// Ties break on hex value so the ordering is deterministic.
func Summarize(picks []pattern.Placement) []Usage {
	counts := make(map[source.RGB]int)
	for _, p := range picks {
		counts[p.Color]++
	}

	usages := make([]Usage, 0, len(counts))
	for c, n := range counts {
		u := Usage{Color: c, Name: Name(c), Count: n}
		if len(picks) > 0 {
			u.Share = float64(n) / float64(len(picks))
		}
		usages = append(usages, u)
	}

	sort.Slice(usages, func(i, j int) bool {
		if usages[i].Count != usages[j].Count {
			return usages[i].Count > usages[j].Count
		}
		return usages[i].Color.Hex() < usages[j].Color.Hex()
	})
	return usages
}

// Stats summarizes a palette for display.
type Stats struct {
	Count         int
	AvgBrightness float64
	Distribution  map[string]int // base color name → count
}

// Statistics computes summary statistics for a palette.
func Statistics(pal []source.RGB) Stats {
	if len(pal) == 0 {
		return Stats{}
	}

	var total float64
	dist := make(map[string]int)
	for _, c := range pal {
		total += Brightness(c)
		name := Name(c)
		// The base hue is the last word of the name ("Dark Blue" → "Blue").
		words := strings.Fields(name)
		dist[words[len(words)-1]]++
	}

	return Stats{
		Count:         len(pal),
		AvgBrightness: total / float64(len(pal)),
		Distribution:  dist,
	}
}
