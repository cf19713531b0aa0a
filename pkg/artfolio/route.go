package artfolio

import (
	"context"
	"strings"
)

// Client-side routes. Callers attach the route they are acting for to the
// request context so the client can decide how to react to a rejected
// admin session.
const (
	RouteHome    = "/"
	RouteGallery = "/gallery"
	RouteAbout   = "/about"
	RouteContact = "/contact"

	RouteAdminLogin     = "/admin"
	RouteAdminDashboard = "/admin/dashboard"
	RouteAdminArtworks  = "/admin/artworks"
	RouteAdminContacts  = "/admin/contacts"
	RouteAdminSettings  = "/admin/settings"
)

const (
	adminRoutePrefix = "/admin/"
	adminPathPrefix  = "/api/admin/"
)

type routeKey struct{}

// WithRoute returns a copy of ctx carrying the route the caller is acting for.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// RouteFromContext returns the route stored by WithRoute, or RouteHome.
func RouteFromContext(ctx context.Context) string {
	if ctx == nil {
		return RouteHome
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return RouteHome
}

// IsAdminRoute reports whether route is an admin view. The login route itself
// is not one: a rejected login must not bounce back to the login page.
func IsAdminRoute(route string) bool {
	return strings.HasPrefix(route, adminRoutePrefix)
}

// IsAdminPath reports whether an API path requires admin credentials.
func IsAdminPath(path string) bool {
	return strings.HasPrefix(path, adminPathPrefix)
}
