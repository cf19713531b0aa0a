package artfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdminRoute(t *testing.T) {
	tests := map[string]bool{
		RouteHome:           false,
		RouteGallery:        false,
		RouteContact:        false,
		RouteAdminLogin:     false,
		RouteAdminDashboard: true,
		RouteAdminArtworks:  true,
		RouteAdminContacts:  true,
		RouteAdminSettings:  true,
		"/administrator":    false,
	}
	for route, want := range tests {
		assert.Equal(t, want, IsAdminRoute(route), route)
	}
}

func TestIsAdminPath(t *testing.T) {
	assert.True(t, IsAdminPath("/api/admin/contacts"))
	assert.True(t, IsAdminPath("/api/admin/artworks/123"))
	assert.False(t, IsAdminPath("/api/artworks"))
	assert.False(t, IsAdminPath("/api/administer"))
}

func TestRouteFromContext(t *testing.T) {
	assert.Equal(t, RouteHome, RouteFromContext(context.Background()))
	assert.Equal(t, RouteAdminSettings, RouteFromContext(WithRoute(context.Background(), RouteAdminSettings)))
	assert.Equal(t, RouteHome, RouteFromContext(WithRoute(context.Background(), "")))
}
