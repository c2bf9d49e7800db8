package component

// Cluster is one feature group of components, in input order.
type Cluster struct {
	Feature    string
	Components []*Component
}

// Header returns the cluster's header node: the first component that is a
// header candidate, or nil when the cluster has none. At most one header
// exists per cluster.
func (cl *Cluster) Header() *Component {
	for _, c := range cl.Components {
		if c.IsHeaderCandidate() {
			return c
		}
	}
	return nil
}

// GroupByFeature partitions components into feature clusters. Clusters
// appear in first-encounter order and components keep their input order
// within each cluster, so identical inputs always group identically.
// Components without a feature land in the implicit ungrouped cluster.
func GroupByFeature(components []Component) []*Cluster {
	var clusters []*Cluster
	index := make(map[string]int)

	for i := range components {
		c := &components[i]
		key := c.FeatureKey()
		idx, ok := index[key]
		if !ok {
			idx = len(clusters)
			index[key] = idx
			clusters = append(clusters, &Cluster{Feature: key})
		}
		clusters[idx].Components = append(clusters[idx].Components, c)
	}

	return clusters
}
