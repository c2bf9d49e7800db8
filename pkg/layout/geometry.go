package layout

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionMap maps component IDs to canvas positions. It is both the
// override input (externally cached positions that beat computed geometry)
// and the persistence output emitted after every layout.
type PositionMap map[string]Point
