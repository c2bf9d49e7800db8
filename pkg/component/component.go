// Package component defines the input model of the layout pipeline:
// components, their typed relationships, feature clusters, tier and size
// rules, and the derived status flags.
//
// Components arrive as a JSON array. The model is deliberately permissive:
// unknown categories and relation types are accepted and fall back to sane
// defaults rather than failing the whole file.
package component

import (
	"encoding/json"
	"os"
	"time"

	"github.com/archmap-dev/archmap/pkg/errors"
)

// Category classifies a component into one of the fixed architectural
// layers. Unknown categories are tolerated on input.
type Category string

const (
	CategoryDocumentation  Category = "documentation"
	CategoryAsset          Category = "asset"
	CategoryInfrastructure Category = "infrastructure"
	CategoryFrontend       Category = "frontend"
	CategoryAPI            Category = "api"
	CategoryBackend        Category = "backend"
	CategorySecurity       Category = "security"
	CategoryDatabase       Category = "database"
)

// Type sentinels marking header/summary nodes within a cluster.
const (
	TypeSection = "section"
	TypeArea    = "area"
)

// UngroupedFeature is the implicit cluster for components without a
// feature assignment.
const UngroupedFeature = "Ungrouped"

// RelationType classifies a relationship between two components.
type RelationType string

const (
	RelationUses       RelationType = "uses"
	RelationImplements RelationType = "implements"
	RelationExtends    RelationType = "extends"
	RelationDependsOn  RelationType = "depends_on"
	RelationCalls      RelationType = "calls"
	RelationContains   RelationType = "contains"
)

// relationWeights maps relation types to their connection-strength
// contribution.
var relationWeights = map[RelationType]int{
	RelationContains:   10,
	RelationExtends:    8,
	RelationDependsOn:  7,
	RelationImplements: 6,
	RelationUses:       4,
	RelationCalls:      4,
}

// defaultRelationWeight covers unrecognized relation types.
const defaultRelationWeight = 1

// Relationship is a typed, directed link from its owning component to
// TargetID. The ID is shared across both directions of a bidirectional pair
// and keys edge deduplication downstream.
type Relationship struct {
	ID           string       `json:"id,omitempty"`
	TargetID     string       `json:"targetId"`
	RelationType RelationType `json:"relationType"`
	Description  string       `json:"description,omitempty"`
}

// Weight returns the connection-strength contribution of the relationship.
func (r Relationship) Weight() int {
	if w, ok := relationWeights[r.RelationType]; ok {
		return w
	}
	return defaultRelationWeight
}

// Component is one input record of the layout pipeline.
type Component struct {
	ID            string         `json:"id"`
	Category      Category       `json:"category"`
	Type          string         `json:"type,omitempty"`
	Feature       string         `json:"feature,omitempty"`
	Title         string         `json:"title,omitempty"`
	Content       string         `json:"content,omitempty"`
	CreatedAt     time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty"`
}

// FeatureKey returns the component's cluster key, falling back to the
// implicit ungrouped cluster.
func (c *Component) FeatureKey() string {
	if c.Feature == "" {
		return UngroupedFeature
	}
	return c.Feature
}

// IsHeaderCandidate reports whether the component can act as its cluster's
// header node: documentation components and section/area summary nodes.
func (c *Component) IsHeaderCandidate() bool {
	return c.Category == CategoryDocumentation || c.Type == TypeSection || c.Type == TypeArea
}

// ConnectionStrength sums the weights of all the component's relationships.
// The score drives node sizing.
func (c *Component) ConnectionStrength() int {
	strength := 0
	for _, r := range c.Relationships {
		strength += r.Weight()
	}
	return strength
}

// DisplayLabel returns the component's title, falling back to its ID.
func (c *Component) DisplayLabel() string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

// UnmarshalComponents parses a JSON array of components.
func UnmarshalComponents(data []byte) ([]Component, error) {
	var comps []Component
	if err := json.Unmarshal(data, &comps); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse components")
	}
	for i, c := range comps {
		if c.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidComponent, "component %d has no id", i)
		}
	}
	return comps, nil
}

// MarshalComponents serializes components to indented JSON.
func MarshalComponents(comps []Component) ([]byte, error) {
	return json.MarshalIndent(comps, "", "  ")
}

// ReadFile loads a components file from disk.
func ReadFile(path string) ([]Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "components file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read components file %s", path)
	}
	return UnmarshalComponents(data)
}
