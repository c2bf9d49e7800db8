package component

// Node sizing constants. Sizes grow linearly with connection strength and
// are capped so a hub node cannot dominate the canvas.
const (
	BaseWidth  = 400.0
	BaseHeight = 200.0

	HeaderBaseWidth  = 600.0
	HeaderBaseHeight = 250.0

	WidthPerStrength  = 8.0
	HeightPerStrength = 4.0

	MaxWidth  = 800.0
	MaxHeight = 350.0
)

// Size is a node's bounding box in canvas units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SizeFor computes a component's node size from its connection strength.
// Header nodes start from a larger base; both share the same growth rate
// and caps.
func SizeFor(c *Component, isClusterHeader bool) Size {
	w, h := BaseWidth, BaseHeight
	if isClusterHeader {
		w, h = HeaderBaseWidth, HeaderBaseHeight
	}

	strength := float64(c.ConnectionStrength())
	return Size{
		Width:  min(w+strength*WidthPerStrength, MaxWidth),
		Height: min(h+strength*HeightPerStrength, MaxHeight),
	}
}
