package component

// Tier constants. Headers sit on a virtual tier above all categories; the
// offset is applied uniformly when combining clusters so the header tier
// and the lowest category tier end up adjacent, not overlapping.
const (
	HeaderTier = -1
	TierOffset = 1
)

// categoryTiers is the fixed vertical rank per category, top to bottom.
var categoryTiers = map[Category]int{
	CategoryDocumentation:  0,
	CategoryAsset:          0,
	CategoryInfrastructure: 1,
	CategoryFrontend:       2,
	CategoryAPI:            3,
	CategoryBackend:        4,
	CategorySecurity:       5,
	CategoryDatabase:       6,
}

// CategoryTier returns the fixed rank of a category. Unknown categories
// land on the api tier, keeping malformed input visible mid-canvas.
func CategoryTier(cat Category) int {
	if tier, ok := categoryTiers[cat]; ok {
		return tier
	}
	return categoryTiers[CategoryAPI]
}

// TierFor returns the raw tier of a component. The cluster header is
// always pinned above the category tiers.
func TierFor(c *Component, isClusterHeader bool) int {
	if isClusterHeader {
		return HeaderTier
	}
	return CategoryTier(c.Category)
}
