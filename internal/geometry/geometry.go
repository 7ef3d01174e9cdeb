// Package geometry holds the pure coordinate helpers shared by the building
// index and the map renderers. All floor positions live on a normalized unit
// square; display mapping converts them to screen space.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// UnitSquare is the normalized plane every floor map is expressed in.
var UnitSquare = orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}

// Point is a position in display space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Display describes where a map page sits inside a display container.
type Display struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Distance returns the Euclidean distance between (ax, ay) and (bx, by).
func Distance(ax, ay, bx, by float64) float64 {
	return planar.Distance(orb.Point{ax, ay}, orb.Point{bx, by})
}

// MapNormalizedToDisplay converts a normalized floor position into display
// coordinates. Rooms and entrances must go through the same transform.
func MapNormalizedToDisplay(normX, normY, displayWidth, displayHeight, offsetX, offsetY float64) Point {
	return Point{
		X: offsetX + normX*displayWidth,
		Y: offsetY + normY*displayHeight,
	}
}

// Map applies MapNormalizedToDisplay with the receiver's dimensions.
func (d Display) Map(normX, normY float64) Point {
	return MapNormalizedToDisplay(normX, normY, d.Width, d.Height, d.OffsetX, d.OffsetY)
}

// FitDisplay scales a page into a container keeping its aspect ratio and
// centers it on the axis with slack. Non-positive sizes yield a zero Display.
func FitDisplay(pageWidth, pageHeight, containerWidth, containerHeight float64) Display {
	if pageWidth <= 0 || pageHeight <= 0 || containerWidth <= 0 || containerHeight <= 0 {
		return Display{}
	}
	pageAspect := pageWidth / pageHeight
	containerAspect := containerWidth / containerHeight

	if pageAspect > containerAspect {
		// page is wider than the container
		h := containerWidth / pageAspect
		return Display{
			Width:   containerWidth,
			Height:  h,
			OffsetY: (containerHeight - h) / 2,
		}
	}
	w := containerHeight * pageAspect
	return Display{
		Width:   w,
		Height:  containerHeight,
		OffsetX: (containerWidth - w) / 2,
	}
}

// InUnitSquare reports whether (x, y) is a valid normalized position.
// NaN is never valid.
func InUnitSquare(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	return UnitSquare.Contains(orb.Point{x, y})
}

// ClampUnit clamps v into [0, 1]. NaN clamps to 0.
func ClampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// NormalizePagePoint converts page units into the unit square. A degenerate
// page size yields ok=false.
func NormalizePagePoint(x, y, pageWidth, pageHeight float64) (nx, ny float64, ok bool) {
	if pageWidth <= 0 || pageHeight <= 0 {
		return 0, 0, false
	}
	return x / pageWidth, y / pageHeight, true
}
