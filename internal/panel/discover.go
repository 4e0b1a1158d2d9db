package panel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/figtools/internal/imaging"
)

// FigureID returns the token of figureBase before its first underscore, or
// the whole string when it has none: "01_workflow" -> "01".
func FigureID(figureBase string) string {
	id, _, _ := strings.Cut(figureBase, "_")
	return id
}

// MatchPanel reports whether the file name belongs to figure id and returns
// its uppercase panel label. The name must be
// <id><letter>_<anything>.<ext> with a supported image extension.
func MatchPanel(name, id string) (string, bool) {
	if id == "" || !strings.HasPrefix(name, id) {
		return "", false
	}
	rest := name[len(id):]

	ext := filepath.Ext(rest)
	if !imaging.SupportedExtension(ext) || len(rest)-len(ext) < 2 {
		return "", false
	}
	if !isASCIILetter(rest[0]) || rest[1] != '_' {
		return "", false
	}
	return strings.ToUpper(rest[:1]), true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Discover scans searchDir (non-recursively) for the panels of figureBase
// and returns a label -> path mapping.
//
// Files are visited in lexical name order. When two files yield the same
// label the first one wins and the other is logged, unless strict is set,
// in which case ErrDuplicateLabel is returned. An empty mapping with a nil
// error means no panel matched.
func Discover(figureBase, searchDir string, strict bool, logger *log.Logger) (map[string]string, error) {
	if logger == nil {
		logger = log.Default()
	}

	id := FigureID(figureBase)
	if id == "" {
		return nil, fmt.Errorf("%w: %q has no figure id", ErrInvalidFigureBase, figureBase)
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read search dir: %w", err)
	}

	panels := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lbl, ok := MatchPanel(e.Name(), id)
		if !ok {
			continue
		}

		path := filepath.Join(searchDir, e.Name())
		if prev, dup := panels[lbl]; dup {
			if strict {
				return nil, fmt.Errorf("%w %s: %s and %s", ErrDuplicateLabel, lbl, prev, path)
			}
			logger.Warn("duplicate panel label, keeping first", "label", lbl, "kept", prev, "ignored", path)
			continue
		}
		panels[lbl] = path
	}

	logger.Debug("discovered panels", "figure", id, "dir", searchDir, "count", len(panels))
	return panels, nil
}
