package draw

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestImageDimensions(t *testing.T) {
	img := NewImage(image.NewRGBA(image.Rect(0, 0, 100, 50)))
	if img.Width() != 100 || img.Height() != 50 {
		t.Errorf("image is %dx%d, want 100x50", img.Width(), img.Height())
	}
}

func TestPictureCentersOnUserCoordinate(t *testing.T) {
	c, rec := newRecordedCanvas(t, 512, 512)

	c.Picture(NewImage(image.NewRGBA(image.Rect(0, 0, 100, 50))), 0.5, 0.5)

	call := assertSingleCall(t, rec, "DrawImage")
	// Blitted so the image center lands on pixel (256, 256).
	if call.args[0] != 206 || call.args[1] != 231 {
		t.Errorf("picture blitted at (%v, %v), want (206, 231)", call.args[0], call.args[1])
	}
}

func TestPictureCenteredUsesCanvasMidpoint(t *testing.T) {
	c, rec := newRecordedCanvas(t, 512, 512)

	if err := c.SetScale(0, 10); err != nil {
		t.Fatalf("SetScale failed: %v", err)
	}
	c.PictureCentered(NewImage(image.NewRGBA(image.Rect(0, 0, 12, 12))))

	call := assertSingleCall(t, rec, "DrawImage")
	if call.args[0] != 250 || call.args[1] != 250 {
		t.Errorf("picture blitted at (%v, %v), want (250, 250)", call.args[0], call.args[1])
	}
}

func TestLoadPicture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 7))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	img, err := LoadPicture(path)
	if err != nil {
		t.Fatalf("LoadPicture failed: %v", err)
	}
	if img.Width() != 3 || img.Height() != 7 {
		t.Errorf("picture is %dx%d, want 3x7", img.Width(), img.Height())
	}
}

func TestLoadPictureMissingFile(t *testing.T) {
	if _, err := LoadPicture("/nonexistent/tile.png"); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadPictureGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := LoadPicture(path); err == nil {
		t.Error("expected decode error, got nil")
	}
}
