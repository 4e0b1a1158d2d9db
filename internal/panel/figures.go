package panel

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ironsheep/figtools/internal/imaging"
)

// panelName splits <id><letter>_<description> where id is a run of digits,
// optionally preceded by a dot for hidden working files.
var panelName = regexp.MustCompile(`^(\.?[0-9]+)([A-Za-z])_(.*)$`)

// Figure is one figure group found by FindFigures.
type Figure struct {
	// ID is the shared figure id, e.g. "01".
	ID string `json:"id"`

	// Base is "<id>_<description>", the description taken from the
	// lowest-labeled panel.
	Base string `json:"base"`

	// Labels lists the panel letters found, sorted and uppercased.
	Labels []string `json:"labels"`
}

// FindFigures groups the panel files in dir by figure id, sorted by id.
func FindFigures(dir string) ([]Figure, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read search dir: %w", err)
	}

	type group struct {
		firstLabel string
		desc       string
		labels     map[string]bool
	}
	groups := make(map[string]*group)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !imaging.SupportedExtension(ext) {
			continue
		}
		m := panelName.FindStringSubmatch(strings.TrimSuffix(e.Name(), ext))
		if m == nil {
			continue
		}
		id, lbl, desc := m[1], strings.ToUpper(m[2]), m[3]

		g, ok := groups[id]
		if !ok {
			g = &group{labels: make(map[string]bool)}
			groups[id] = g
		}
		g.labels[lbl] = true
		if g.firstLabel == "" || lbl < g.firstLabel {
			g.firstLabel, g.desc = lbl, desc
		}
	}

	figures := make([]Figure, 0, len(groups))
	for id, g := range groups {
		labels := make([]string, 0, len(g.labels))
		for l := range g.labels {
			labels = append(labels, l)
		}
		sort.Strings(labels)

		base := id
		if g.desc != "" {
			base = id + "_" + g.desc
		}
		figures = append(figures, Figure{ID: id, Base: base, Labels: labels})
	}
	sort.Slice(figures, func(i, j int) bool { return figures[i].ID < figures[j].ID })
	return figures, nil
}
