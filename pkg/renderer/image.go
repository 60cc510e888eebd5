package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/BlockOG/ray-tracing/pkg/core"
)

// Image is a linear float RGB buffer, row 0 at the top
type Image struct {
	Width, Height int
	Pix           []core.Vec3 // Row-major, Width*Height entries
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// At returns the color at pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pix[y*img.Width+x]
}

// Set stores the color at pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pix[y*img.Width+x] = c
}

// Average returns the mean color over all pixels
func (img *Image) Average() core.Vec3 {
	if len(img.Pix) == 0 {
		return core.Vec3{}
	}
	sum := core.Vec3{}
	for _, c := range img.Pix {
		sum = sum.Add(c)
	}
	return sum.Multiply(1 / float32(len(img.Pix)))
}

// ToRGBA converts the buffer to 8-bit color. Each channel is clamped to [0, 1]
// and scaled to [0, 255] with rounding; NaN becomes 0.
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y).Clamp(0, 1)
			out.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X),
				G: toByte(c.Y),
				B: toByte(c.Z),
				A: 255,
			})
		}
	}
	return out
}

func toByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(math.Round(float64(v) * 255))
}
