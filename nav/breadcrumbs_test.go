package nav

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownSegments(t *testing.T) {
	res := NewResolver()

	crumbs := res.Resolve(context.Background(), "/dashboard/products/new")

	require.Len(t, crumbs, 4)
	assert.Equal(t, Crumb{Label: "Home", Href: "/"}, crumbs[0])
	assert.Equal(t, Crumb{Label: "Dashboard", Href: "/dashboard"}, crumbs[1])
	assert.Equal(t, Crumb{Label: "Products", Href: "/dashboard/products"}, crumbs[2])
	// The current page never links to itself.
	assert.Equal(t, Crumb{Label: "New"}, crumbs[3])
}

func TestResolveEntityIDWithLookup(t *testing.T) {
	res := NewResolver()
	res.RegisterLookup("products", func(ctx context.Context, id string) (string, bool) {
		if id == "p1a2b3c4d5e6" {
			return "Abstract Painting", true
		}
		return "", false
	})

	crumbs := res.Resolve(context.Background(), "/products/p1a2b3c4d5e6/edit")

	require.Len(t, crumbs, 4)
	assert.Equal(t, "Abstract Painting", crumbs[2].Label)
	assert.Empty(t, crumbs[2].Href)
	assert.Equal(t, "Edit", crumbs[3].Label)
}

func TestResolveUnknownIDFallsBackToShortForm(t *testing.T) {
	res := NewResolver()

	crumbs := res.Resolve(context.Background(), "/users/64f1c2d3e4a5b6c7d8e9f0a1")

	require.Len(t, crumbs, 3)
	assert.Equal(t, "64f1c2d3...", crumbs[2].Label)
}

func TestResolveUnmappedSegmentKeepsRawName(t *testing.T) {
	res := NewResolver()

	crumbs := res.Resolve(context.Background(), "/reports/weekly")

	require.Len(t, crumbs, 3)
	assert.Equal(t, "reports", crumbs[1].Label)
	assert.Equal(t, "/reports", crumbs[1].Href)
	assert.Equal(t, "weekly", crumbs[2].Label)
}

func TestResolveLongLowercaseWordStaysRaw(t *testing.T) {
	res := NewResolver()

	// "promociones" is id-length and starts with an id prefix letter but is
	// an ordinary word; it must not be shortened.
	crumbs := res.Resolve(context.Background(), "/categories/promociones")

	require.Len(t, crumbs, 3)
	assert.Equal(t, "categories", crumbs[1].Label)
	assert.Equal(t, "promociones", crumbs[2].Label)
}

func TestResolveEmptyPath(t *testing.T) {
	res := NewResolver()

	crumbs := res.Resolve(context.Background(), "/")
	require.Len(t, crumbs, 1)
	assert.Equal(t, "Home", crumbs[0].Label)
}
