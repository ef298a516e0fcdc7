// Package common provides shared utilities and interfaces for tiled image data.
// GameCube banner pixel data is stored as a grid of 4x4 pixel tiles rather
// than in raster order; these helpers map tiled indices to image coordinates.
package common

import (
	"image"
)

// TileDecoder interface defines methods for decoding tiled pixel formats
// into standard images
type TileDecoder interface {
	// DecodeImage converts raw tiled pixel data to a standard RGBA image
	DecodeImage() (*image.RGBA, error)
}

// TilePixelPosition maps the index of a pixel in tile storage order to its
// (x, y) position in the final image. Pixels are stored tile by tile, rows
// of tiles left to right, and row-major within each tile.
func TilePixelPosition(pixelIndex, tileSize, imageWidth int) (int, int) {
	tilePixels := tileSize * tileSize
	widthTiles := imageWidth / tileSize

	tile := pixelIndex / tilePixels
	tilePixel := pixelIndex % tilePixels

	tileY := tile / widthTiles
	tileX := tile % widthTiles

	tilePixelY := tilePixel / tileSize
	tilePixelX := tilePixel % tileSize

	return tileX*tileSize + tilePixelX, tileY*tileSize + tilePixelY
}
