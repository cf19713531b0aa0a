package artfolio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
)

// SessionState is the admin login state.
type SessionState int

const (
	LoggedOut SessionState = iota
	LoggedIn
)

func (s SessionState) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// Navigator moves the caller to another route, e.g. the login view after the
// session expired.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) { f(ctx, route) }

// AdminClient wraps the authenticated endpoints and the login lifecycle.
type AdminClient struct {
	core  *Client
	store CredentialStore
	nav   Navigator
}

// NewAdminClient returns an AdminClient sharing core. nav receives the login
// route on logout and whenever the backend rejects the stored credentials on
// an admin route; it replaces any unauthorized handler set on core.
func NewAdminClient(core *Client, nav Navigator) *AdminClient {
	a := &AdminClient{core: core, store: core.Store(), nav: nav}
	core.SetUnauthorizedHandler(a.navigate)
	return a
}

// NewAdmin builds a core client and an AdminClient on top of it.
func NewAdmin(baseURL string, store CredentialStore, nav Navigator, opts ...Option) (*AdminClient, error) {
	core, err := New(baseURL, store, opts...)
	if err != nil {
		return nil, err
	}
	return NewAdminClient(core, nav), nil
}

// Core returns the shared client.
func (a *AdminClient) Core() *Client { return a.core }

func (a *AdminClient) navigate(ctx context.Context, route string) {
	if a.nav != nil {
		a.nav.Navigate(ctx, route)
	}
}

// Login stores the candidate credentials and probes the backend with them.
// On any probe failure the stored credentials are removed again, so a failed
// login never leaves a pair behind.
func (a *AdminClient) Login(ctx context.Context, username, password string) (*MessageResponse, error) {
	const path = "/api/admin/contacts"
	if username == "" || password == "" {
		return nil, validationError(http.MethodGet, path, "username and password are required")
	}
	creds := Credentials{Username: username, Password: password}
	if err := a.store.Set(creds); err != nil {
		return nil, fmt.Errorf("store credentials: %w", err)
	}

	err := a.core.Do(WithRoute(ctx, RouteAdminLogin), Request{
		Method:      http.MethodGet,
		Path:        path,
		Credentials: &creds,
	})
	if err != nil {
		if clearErr := a.store.Clear(); clearErr != nil {
			a.core.log.Error("failed to roll back credentials", "error", clearErr)
		}
		return nil, err
	}
	a.core.log.Info("admin logged in", "username", username)
	return &MessageResponse{Message: "Login successful"}, nil
}

// Logout drops the stored credentials and navigates to the login route.
// It never talks to the backend.
func (a *AdminClient) Logout(ctx context.Context) error {
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	a.navigate(ctx, RouteAdminLogin)
	return nil
}

// IsLoggedIn reports whether credentials are stored. It does not check them
// against the backend.
func (a *AdminClient) IsLoggedIn() bool {
	_, ok := a.store.Get()
	return ok
}

// State returns the session state derived from the store.
func (a *AdminClient) State() SessionState {
	if a.IsLoggedIn() {
		return LoggedIn
	}
	return LoggedOut
}

// GetArtworks lists all artworks. The backend has no admin listing, so this
// goes through the public collection.
func (a *AdminClient) GetArtworks(ctx context.Context) ([]Artwork, error) {
	var payload artworksResponse
	if err := a.core.Do(ctx, Request{Method: http.MethodGet, Path: "/api/artworks", Dest: &payload}); err != nil {
		return nil, err
	}
	return payload.Artworks, nil
}

// CreateArtwork creates an artwork. The response carries the assigned id.
func (a *AdminClient) CreateArtwork(ctx context.Context, artwork Artwork) (*MessageResponse, error) {
	var resp MessageResponse
	if err := a.core.Do(ctx, Request{Method: http.MethodPost, Path: "/api/admin/artworks", JSON: artwork, Dest: &resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateArtwork replaces the artwork with the given id.
func (a *AdminClient) UpdateArtwork(ctx context.Context, id string, artwork Artwork) (*MessageResponse, error) {
	path := "/api/admin/artworks/" + url.PathEscape(id)
	if strings.TrimSpace(id) == "" {
		return nil, validationError(http.MethodPut, path, "artwork id is required")
	}
	var resp MessageResponse
	if err := a.core.Do(ctx, Request{Method: http.MethodPut, Path: path, JSON: artwork, Dest: &resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteArtwork removes the artwork with the given id.
func (a *AdminClient) DeleteArtwork(ctx context.Context, id string) (*MessageResponse, error) {
	path := "/api/admin/artworks/" + url.PathEscape(id)
	if strings.TrimSpace(id) == "" {
		return nil, validationError(http.MethodDelete, path, "artwork id is required")
	}
	var resp MessageResponse
	if err := a.core.Do(ctx, Request{Method: http.MethodDelete, Path: path, Dest: &resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadImage sends an image as multipart form data and returns where the
// backend stored it.
func (a *AdminClient) UploadImage(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	const path = "/api/admin/upload"
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, validationError(http.MethodPost, path, "image is empty")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filepath.Base(filename))))
	header.Set("Content-Type", imageContentType(filename, data))
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	var resp UploadResponse
	err = a.core.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        &buf,
		ContentType: mw.FormDataContentType(),
		Dest:        &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetContacts lists contact submissions, newest first.
func (a *AdminClient) GetContacts(ctx context.Context) ([]ContactMessage, error) {
	var payload contactsResponse
	if err := a.core.Do(ctx, Request{Method: http.MethodGet, Path: "/api/admin/contacts", Dest: &payload}); err != nil {
		return nil, err
	}
	return payload.Contacts, nil
}

// GetNewsletterSubscribers lists subscribers, newest first.
func (a *AdminClient) GetNewsletterSubscribers(ctx context.Context) ([]Subscriber, error) {
	var payload subscribersResponse
	if err := a.core.Do(ctx, Request{Method: http.MethodGet, Path: "/api/admin/newsletter", Dest: &payload}); err != nil {
		return nil, err
	}
	return payload.Subscribers, nil
}

// UpdateSiteSettings replaces the settings record as a whole.
func (a *AdminClient) UpdateSiteSettings(ctx context.Context, settings SiteSettings) (*MessageResponse, error) {
	var resp MessageResponse
	if err := a.core.Do(ctx, Request{Method: http.MethodPut, Path: "/api/admin/settings", JSON: settings, Dest: &resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

func imageContentType(filename string, data []byte) string {
	if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
