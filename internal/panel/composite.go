package panel

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sort"
)

// Labeler draws a panel label onto the composite for the panel whose
// top-left corner is origin. *label.Renderer implements it.
type Labeler interface {
	Render(dst draw.Image, text string, origin image.Point)
}

// Placement records where one panel was pasted.
type Placement struct {
	Label  string      `json:"label"`
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Origin image.Point `json:"origin"`
}

// Composite is the tiled canvas and how it was laid out.
type Composite struct {
	Canvas     *image.RGBA
	Grid       Grid
	PanelSize  Size
	Spacing    int
	Placements []Placement
}

// CanvasSize returns the composite dimensions for grid cells of size cell
// separated by spacing pixels.
func CanvasSize(grid Grid, cell Size, spacing int) Size {
	return Size{
		Width:  grid.Cols*cell.Width + (grid.Cols-1)*spacing,
		Height: grid.Rows*cell.Height + (grid.Rows-1)*spacing,
	}
}

// Compose pastes panels (already normalized to size) row-major into grid on
// a white canvas, ordered by label, and calls labeler right after each
// paste. Unused trailing cells stay white. labeler may be nil.
func Compose(panels []*Panel, grid Grid, size Size, spacing int, labeler Labeler) (*Composite, error) {
	if spacing < 0 {
		return nil, errors.New("spacing must not be negative")
	}
	if grid.Rows < 1 || grid.Cols < 1 {
		return nil, errors.New("grid must have at least one row and column")
	}

	dims := CanvasSize(grid, size, spacing)
	canvas := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	ordered := append([]*Panel(nil), panels...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Label < ordered[j].Label })

	comp := &Composite{
		Canvas:     canvas,
		Grid:       grid,
		PanelSize:  size,
		Spacing:    spacing,
		Placements: make([]Placement, 0, len(ordered)),
	}

	for i, p := range ordered {
		if i >= grid.Cells() {
			break
		}
		row, col := grid.Cell(i)
		origin := image.Pt(col*(size.Width+spacing), row*(size.Height+spacing))

		src := p.Image.Bounds()
		draw.Draw(canvas, image.Rectangle{Min: origin, Max: origin.Add(src.Size())}, p.Image, src.Min, draw.Over)
		if labeler != nil {
			labeler.Render(canvas, p.Label, origin)
		}

		comp.Placements = append(comp.Placements, Placement{Label: p.Label, Row: row, Col: col, Origin: origin})
	}

	return comp, nil
}
