package draw

import (
	"fmt"
	"image"
	"os"

	// Codecs registered for LoadPicture's image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Drawable is an image source the canvas can blit. Width and Height are
// the native pixel dimensions of Image's bounds.
type Drawable interface {
	Width() int
	Height() int
	Image() image.Image
}

// Image adapts a decoded image.Image to the Drawable contract.
type Image struct {
	img image.Image
}

// NewImage wraps an image as a Drawable.
func NewImage(img image.Image) *Image {
	return &Image{img: img}
}

// Width returns the image width in pixels.
func (i *Image) Width() int { return i.img.Bounds().Dx() }

// Height returns the image height in pixels.
func (i *Image) Height() int { return i.img.Bounds().Dy() }

// Image returns the wrapped image.
func (i *Image) Image() image.Image { return i.img }

// LoadPicture reads and decodes a PNG, JPEG or GIF file.
func LoadPicture(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open picture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode picture %s: %w", path, err)
	}
	return &Image{img: img}, nil
}

// pictureLocked blits p at native size, centered on a user coordinate.
func (c *Canvas) pictureLocked(p Drawable, x, y float64) {
	xs := c.vp.ScaleX(x)
	ys := c.vp.ScaleY(y)
	ws := float64(p.Width())
	hs := float64(p.Height())
	c.surface.DrawImage(p.Image(), xs-ws/2.0, ys-hs/2.0)
}

// Picture draws p at its native pixel size, centered at the user
// coordinate (x, y).
func (c *Canvas) Picture(p Drawable, x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.pictureLocked(p, x, y)
}

// PictureCentered draws p at its native pixel size, centered on the
// canvas midpoint.
func (c *Canvas) PictureCentered(p Drawable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	cx, cy := c.vp.Center()
	c.pictureLocked(p, cx, cy)
}
