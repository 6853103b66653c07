package plants

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
)

const DefaultTextureSize = 512

// DefaultNoiseScale is the per-channel (R, G, B) amplitude of the noise
// added by PerturbTexture.
var DefaultNoiseScale = [3]float64{100, 150, 50}

// TrivialWedgeUVs assigns every face its own cell in a square grid covering
// the unit texture square, and returns the texture coordinates of each face
// corner.
//
// A border of a couple of texels is kept around each cell so that
// neighboring faces do not bleed into each other.
func TrivialWedgeUVs(numFaces, textureSize int) [][3][2]float64 {
	if numFaces == 0 {
		return nil
	}
	side := int(math.Ceil(math.Sqrt(float64(numFaces))))
	cell := 1 / float64(side)
	border := math.Min(2/float64(textureSize), cell/4)

	res := make([][3][2]float64, numFaces)
	for i := range res {
		x0 := float64(i%side) * cell
		y0 := float64(i/side) * cell
		res[i] = [3][2]float64{
			{x0 + border, y0 + border},
			{x0 + cell - border, y0 + border},
			{x0 + border, y0 + cell - border},
		}
	}
	return res
}

// BakeTexture writes a size x size PNG filled with a single color.
//
// Every vertex of the meshes produced by this package has the same color,
// so this is what baking vertex colors into any parametrization yields.
func BakeTexture(path string, c color.RGBA, size int) error {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	err := Save(path, image.Image(img), func(w io.Writer, img image.Image) error {
		return png.Encode(w, img)
	})
	return errors.Wrap(err, "bake texture")
}

// PerturbTexture replaces every pixel of a PNG texture by its mean color
// plus uniform noise, overwriting the file.
//
// For every channel, the noise is drawn from [-scale/2, scale/2) and the
// result is clipped to [0, 255].
func PerturbTexture(path string, scale [3]float64, rng *rand.Rand) error {
	img, err := Load(path, png.Decode)
	if err != nil {
		return errors.Wrap(err, "perturb texture")
	}
	mean := meanColor(img)

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	seeds := make([]int64, bounds.Dy())
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	essentials.ConcurrentMap(0, bounds.Dy(), func(row int) {
		gen := rand.New(rand.NewSource(seeds[row]))
		y := bounds.Min.Y + row
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var px [3]uint8
			for ch := range px {
				value := (gen.Float64()-0.5)*scale[ch] + mean[ch]
				px[ch] = uint8(math.Max(0, math.Min(255, value)))
			}
			out.SetRGBA(x, y, color.RGBA{R: px[0], G: px[1], B: px[2], A: 255})
		}
	})

	err = Save(path, image.Image(out), func(w io.Writer, img image.Image) error {
		return png.Encode(w, img)
	})
	return errors.Wrap(err, "perturb texture")
}

// meanColor averages each column first and then the column means, which
// amounts to the mean over all pixels.
func meanColor(img image.Image) [3]float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return [3]float64{}
	}
	var total [3]float64
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		var column [3]float64
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			r, g, b, _ := img.At(x, y).RGBA()
			column[0] += float64(r >> 8)
			column[1] += float64(g >> 8)
			column[2] += float64(b >> 8)
		}
		for ch := range total {
			total[ch] += column[ch] / float64(bounds.Dy())
		}
	}
	for ch := range total {
		total[ch] /= float64(bounds.Dx())
	}
	return total
}
