package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"
)

// createFramedImage draws a dark rectangle r on a white canvas.
func createFramedImage(width, height int, r image.Rectangle) *image.RGBA {
	img := createInMemoryImage(width, height, color.White)
	draw.Draw(img, r, image.NewUniform(color.RGBA{20, 20, 20, 255}), image.Point{}, draw.Src)
	return img
}

func TestContentBounds(t *testing.T) {
	img := createFramedImage(200, 100, image.Rect(50, 20, 120, 70))

	got := ContentBounds(img, 200)
	want := image.Rect(50, 20, 120, 70)
	if got != want {
		t.Errorf("ContentBounds: got %v, want %v", got, want)
	}
}

func TestContentBounds_Blank(t *testing.T) {
	img := createInMemoryImage(80, 60, color.White)

	got := ContentBounds(img, 200)
	if got != img.Bounds() {
		t.Errorf("blank image should report full bounds, got %v", got)
	}
}

func TestContentBounds_OffsetImage(t *testing.T) {
	img := createFramedImage(200, 100, image.Rect(50, 20, 120, 70))
	sub := img.SubImage(image.Rect(40, 10, 200, 100))

	got := ContentBounds(sub, 200)
	want := image.Rect(50, 20, 120, 70)
	if got != want {
		t.Errorf("ContentBounds on sub-image: got %v, want %v", got, want)
	}
}

func TestExpandRect(t *testing.T) {
	limit := image.Rect(0, 0, 100, 100)

	tests := []struct {
		name   string
		r      image.Rectangle
		margin int
		want   image.Rectangle
	}{
		{"inside", image.Rect(40, 40, 60, 60), 10, image.Rect(30, 30, 70, 70)},
		{"clamped", image.Rect(5, 5, 95, 95), 30, image.Rect(0, 0, 100, 100)},
		{"zero margin", image.Rect(10, 20, 30, 40), 0, image.Rect(10, 20, 30, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandRect(tt.r, tt.margin, limit); got != tt.want {
				t.Errorf("ExpandRect: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropToContent(t *testing.T) {
	img := createFramedImage(400, 300, image.Rect(100, 100, 200, 150))

	res := CropToContent(img, 200, 30, 0, 0)

	if res.Region != image.Rect(70, 70, 230, 180) {
		t.Errorf("Region: got %v, want (70,70)-(230,180)", res.Region)
	}
	if res.Width != 160 || res.Height != 110 {
		t.Errorf("dimensions: got %dx%d, want 160x110", res.Width, res.Height)
	}
	if res.OriginalWidth != 400 || res.OriginalHeight != 300 {
		t.Errorf("original dimensions: got %dx%d, want 400x300", res.OriginalWidth, res.OriginalHeight)
	}

	saved := res.AreaSavedPercent()
	if saved < 85 || saved > 86 {
		t.Errorf("AreaSavedPercent: got %.2f, want ~85.3", saved)
	}
}

func TestCropToContent_WithMaxSize(t *testing.T) {
	img := createFramedImage(1000, 500, image.Rect(0, 0, 1000, 500))

	res := CropToContent(img, 200, 0, 400, 400)

	if res.Width != 400 || res.Height != 200 {
		t.Errorf("dimensions: got %dx%d, want 400x200", res.Width, res.Height)
	}
}

func TestFitWithin_AlreadySmall(t *testing.T) {
	img := createInMemoryImage(100, 50, color.White)

	out := FitWithin(img, 200, 200)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Errorf("small image should be unchanged, got %v", out.Bounds())
	}
}

func TestCropFile(t *testing.T) {
	img := createInMemoryImage(200, 100, color.White)
	draw.Draw(img, image.Rect(20, 30, 60, 50), image.NewUniform(color.Black), image.Point{}, draw.Src)
	in := filepath.Join(t.TempDir(), "scan.png")
	if err := Save(img, in, SaveOptions{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out := filepath.Join(t.TempDir(), "sub", "scan.png")

	res, err := CropFile(in, out, CropOptions{Threshold: 200, Margin: 5}, SaveOptions{DPI: 300})
	if err != nil {
		t.Fatalf("CropFile failed: %v", err)
	}
	if res.Region != image.Rect(15, 25, 65, 55) {
		t.Errorf("Region: got %v, want (15,25)-(65,55)", res.Region)
	}

	info, err := LoadImageInfo(out)
	if err != nil {
		t.Fatalf("output not readable: %v", err)
	}
	if info.Width != 50 || info.Height != 30 {
		t.Errorf("output size: got %dx%d, want 50x30", info.Width, info.Height)
	}
}

func TestCropFile_DecodeError(t *testing.T) {
	in := filepath.Join(t.TempDir(), "bad.tif")
	if err := os.WriteFile(in, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CropFile(in, in, CropOptions{}, SaveOptions{}); err == nil {
		t.Error("CropFile should fail for undecodable input")
	}
}
