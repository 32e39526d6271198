// Package loaders provides the thin file-I/O glue the core rendering
// pipeline treats as an external collaborator (spec.md §1): image decoding
// for environment maps and textures, and mesh file parsing.
package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/dorahawk/voxelray/pkg/core"
)

// ImageData is a decoded image as a flat, row-major Vec3 color array.
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage decodes a PNG, JPEG, BMP or TIFF image and converts it to a
// Vec3 array in the image's native (display-referred) color space — no
// gamma decode is applied. Use LoadEnvironment for HDRI/environment maps,
// which must be linearized (spec.md §4.6).
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

// LoadEnvironment decodes an equirectangular environment map and
// linearizes it from 8-bit sRGB, per spec.md §4.6: "the stored buffer is
// linear-RGB (8-bit sRGB inputs are decoded on load with x -> (x/255)^2.2)".
func LoadEnvironment(filename string) (*ImageData, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}

	for i, p := range data.Pixels {
		data.Pixels[i] = core.NewVec3(srgbToLinear(p.X), srgbToLinear(p.Y), srgbToLinear(p.Z))
	}
	return data, nil
}

// srgbToLinear decodes one 8-bit sRGB channel (already normalized to
// [0,1] by LoadImage) to linear radiance via x -> x^2.2 (spec.md §4.6).
func srgbToLinear(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Pow(x, 2.2)
}
