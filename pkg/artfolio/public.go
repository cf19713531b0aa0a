package artfolio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// PublicClient wraps the unauthenticated endpoints.
type PublicClient struct {
	core *Client
}

// NewPublicClient returns a PublicClient sharing core.
func NewPublicClient(core *Client) *PublicClient {
	return &PublicClient{core: core}
}

// GetArtworks lists artworks, optionally only featured ones, capped at limit.
func (p *PublicClient) GetArtworks(ctx context.Context, featuredOnly bool, limit int) ([]Artwork, error) {
	var payload artworksResponse
	err := p.core.Do(ctx, Request{
		Method:   http.MethodGet,
		Path:     "/api/artworks",
		RawQuery: fmt.Sprintf("featured_only=%t&limit=%d", featuredOnly, limit),
		Dest:     &payload,
	})
	if err != nil {
		return nil, err
	}
	return payload.Artworks, nil
}

// GetArtwork fetches a single artwork. A missing id yields ErrNotFound.
func (p *PublicClient) GetArtwork(ctx context.Context, id string) (*Artwork, error) {
	path := "/api/artworks/" + url.PathEscape(id)
	if strings.TrimSpace(id) == "" {
		return nil, validationError(http.MethodGet, path, "artwork id is required")
	}
	var artwork Artwork
	if err := p.core.Do(ctx, Request{Method: http.MethodGet, Path: path, Dest: &artwork}); err != nil {
		return nil, err
	}
	return &artwork, nil
}

// SubmitContact posts a contact form. Blank fields are rejected locally;
// everything else is left to the backend.
func (p *PublicClient) SubmitContact(ctx context.Context, form ContactForm) (*MessageResponse, error) {
	const path = "/api/contact"
	switch {
	case strings.TrimSpace(form.Name) == "":
		return nil, validationError(http.MethodPost, path, "name is required")
	case strings.TrimSpace(form.Email) == "":
		return nil, validationError(http.MethodPost, path, "email is required")
	case strings.TrimSpace(form.Message) == "":
		return nil, validationError(http.MethodPost, path, "message is required")
	}
	var resp MessageResponse
	if err := p.core.Do(ctx, Request{Method: http.MethodPost, Path: path, JSON: form, Dest: &resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NewsletterSignup subscribes an email address.
func (p *PublicClient) NewsletterSignup(ctx context.Context, signup NewsletterSignup) (*MessageResponse, error) {
	const path = "/api/newsletter"
	if strings.TrimSpace(signup.Email) == "" {
		return nil, validationError(http.MethodPost, path, "email is required")
	}
	var resp MessageResponse
	if err := p.core.Do(ctx, Request{Method: http.MethodPost, Path: path, JSON: signup, Dest: &resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSiteSettings fetches the settings singleton.
func (p *PublicClient) GetSiteSettings(ctx context.Context) (*SiteSettings, error) {
	var settings SiteSettings
	if err := p.core.Do(ctx, Request{Method: http.MethodGet, Path: "/api/settings", Dest: &settings}); err != nil {
		return nil, err
	}
	return &settings, nil
}
