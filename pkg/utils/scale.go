package utils

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleImage scales img by the given integer factor using
// nearest neighbour sampling, keeping pixels sharp.
func ScaleImage(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
