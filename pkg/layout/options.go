package layout

// Default layout geometry, in canvas pixels.
const (
	DefaultMargin     = 50.0  // canvas margin around each cluster sub-layout
	DefaultTierHeight = 400.0 // vertical distance between tier bands (rank separation)
	DefaultNodeGap    = 100.0 // horizontal separation between nodes within a tier row
	DefaultClusterGap = 300.0 // horizontal gap between tiled clusters
)

// Options configures layout geometry. Zero fields fall back to the
// defaults, so a partially populated struct (e.g. from a config file)
// behaves sensibly.
type Options struct {
	Margin     float64 `json:"margin,omitempty" toml:"margin"`
	TierHeight float64 `json:"tier_height,omitempty" toml:"tier_height"`
	NodeGap    float64 `json:"node_gap,omitempty" toml:"node_gap"`
	ClusterGap float64 `json:"cluster_gap,omitempty" toml:"cluster_gap"`
}

// DefaultOptions returns the standard layout geometry.
func DefaultOptions() Options {
	return Options{
		Margin:     DefaultMargin,
		TierHeight: DefaultTierHeight,
		NodeGap:    DefaultNodeGap,
		ClusterGap: DefaultClusterGap,
	}
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	if o.TierHeight <= 0 {
		o.TierHeight = d.TierHeight
	}
	if o.NodeGap <= 0 {
		o.NodeGap = d.NodeGap
	}
	if o.ClusterGap <= 0 {
		o.ClusterGap = d.ClusterGap
	}
	return o
}
