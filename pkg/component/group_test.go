package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByFeatureOrder(t *testing.T) {
	comps := []Component{
		{ID: "a", Feature: "Auth"},
		{ID: "b", Feature: "Billing"},
		{ID: "c", Feature: "Auth"},
		{ID: "d"},
		{ID: "e", Feature: "Billing"},
	}

	clusters := GroupByFeature(comps)
	require.Len(t, clusters, 3)

	assert.Equal(t, "Auth", clusters[0].Feature)
	assert.Equal(t, "Billing", clusters[1].Feature)
	assert.Equal(t, UngroupedFeature, clusters[2].Feature)

	require.Len(t, clusters[0].Components, 2)
	assert.Equal(t, "a", clusters[0].Components[0].ID)
	assert.Equal(t, "c", clusters[0].Components[1].ID)
}

func TestGroupByFeatureEmpty(t *testing.T) {
	assert.Empty(t, GroupByFeature(nil))
	assert.Empty(t, GroupByFeature([]Component{}))
}

func TestClusterHeader(t *testing.T) {
	clusters := GroupByFeature([]Component{
		{ID: "impl", Feature: "Auth", Category: CategoryBackend},
		{ID: "docs", Feature: "Auth", Category: CategoryDocumentation},
		{ID: "overview", Feature: "Auth", Category: CategoryAPI, Type: TypeSection},
	})
	require.Len(t, clusters, 1)

	// The first header candidate wins even when later ones exist.
	header := clusters[0].Header()
	require.NotNil(t, header)
	assert.Equal(t, "docs", header.ID)
}

func TestClusterHeaderNone(t *testing.T) {
	clusters := GroupByFeature([]Component{
		{ID: "a", Feature: "Auth", Category: CategoryBackend},
	})
	require.Len(t, clusters, 1)
	assert.Nil(t, clusters[0].Header())
}
