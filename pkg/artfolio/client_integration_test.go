package artfolio_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/jon4hz/artfolio/pkg/artfoliotest"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type recordingNavigator struct {
	routes []string
}

func (n *recordingNavigator) Navigate(_ context.Context, route string) {
	n.routes = append(n.routes, route)
}

type DataClientSuite struct {
	suite.Suite
	server *artfoliotest.Server
	store  *artfolio.MemoryStore
	nav    *recordingNavigator
	public *artfolio.PublicClient
	admin  *artfolio.AdminClient
	ctx    context.Context
}

func (s *DataClientSuite) SetupTest() {
	s.server = artfoliotest.New(
		artfoliotest.WithArtworks(
			artfolio.Artwork{ID: "a1", Title: "Dune", Category: "landscape", Featured: true, Tags: []string{}},
			artfolio.Artwork{ID: "a2", Title: "Grid", Category: "geometric", Tags: []string{}},
			artfolio.Artwork{ID: "a3", Title: "Bloom", Category: "nature", Featured: true, Tags: []string{}},
		),
		artfoliotest.WithContacts(artfolio.ContactMessage{ID: "c1", Name: "Ada", Email: "ada@example.com", Message: "hi", SubmittedAt: time.Now()}),
	)
	s.store = artfolio.NewMemoryStore()
	s.nav = &recordingNavigator{}

	core, err := artfolio.New(s.server.URL, s.store)
	s.Require().NoError(err)
	s.public = artfolio.NewPublicClient(core)
	s.admin = artfolio.NewAdminClient(core, s.nav)
	s.ctx = context.Background()
}

func (s *DataClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *DataClientSuite) login() {
	_, err := s.admin.Login(s.ctx, artfoliotest.DefaultUsername, artfoliotest.DefaultPassword)
	s.Require().NoError(err)
}

func (s *DataClientSuite) TestGetArtworksQueryString() {
	artworks, err := s.public.GetArtworks(s.ctx, true, 6)
	s.Require().NoError(err)

	last, ok := s.server.LastRequest()
	s.Require().True(ok)
	s.Equal("/api/artworks", last.Path)
	s.Equal("featured_only=true&limit=6", last.RawQuery)
	s.False(last.HasAuth)
	s.Len(artworks, 2)
	s.True(lo.EveryBy(artworks, func(a artfolio.Artwork) bool { return a.Featured }))

	_, err = s.public.GetArtworks(s.ctx, false, 1)
	s.Require().NoError(err)
	last, _ = s.server.LastRequest()
	s.Equal("featured_only=false&limit=1", last.RawQuery)
}

func (s *DataClientSuite) TestGetArtworkNotFound() {
	_, err := s.public.GetArtwork(s.ctx, "missing")
	s.ErrorIs(err, artfolio.ErrNotFound)

	_, err = s.public.GetArtwork(s.ctx, " ")
	s.ErrorIs(err, artfolio.ErrValidation)
}

func (s *DataClientSuite) TestPublicCallsNeverCarryCredentials() {
	s.login()

	_, err := s.public.GetSiteSettings(s.ctx)
	s.Require().NoError(err)
	_, err = s.public.SubmitContact(s.ctx, artfolio.ContactForm{Name: "Bo", Email: "bo@example.com", Message: "Love it"})
	s.Require().NoError(err)
	_, err = s.public.NewsletterSignup(s.ctx, artfolio.NewsletterSignup{Email: "bo@example.com"})
	s.Require().NoError(err)

	for _, req := range s.server.Requests() {
		if artfolio.IsAdminPath(req.Path) {
			continue
		}
		s.False(req.HasAuth, "public request %s %s carried credentials", req.Method, req.Path)
	}
}

func (s *DataClientSuite) TestSubmitContactValidatesLocally() {
	before := len(s.server.Requests())
	_, err := s.public.SubmitContact(s.ctx, artfolio.ContactForm{Name: "Bo", Email: "", Message: "x"})
	s.ErrorIs(err, artfolio.ErrValidation)
	s.Len(s.server.Requests(), before)

	_, err = s.public.SubmitContact(s.ctx, artfolio.ContactForm{Name: "Bo", Email: "not-an-email", Message: "x"})
	s.ErrorIs(err, artfolio.ErrValidation)
	s.Len(s.server.Requests(), before+1)
}

func (s *DataClientSuite) TestNewsletterSignupDuplicate() {
	resp, err := s.public.NewsletterSignup(s.ctx, artfolio.NewsletterSignup{Email: "x@example.com", Name: "X"})
	s.Require().NoError(err)
	s.Equal("Successfully subscribed to newsletter", resp.Message)

	resp, err = s.public.NewsletterSignup(s.ctx, artfolio.NewsletterSignup{Email: "x@example.com"})
	s.Require().NoError(err)
	s.Equal("Email already subscribed", resp.Message)
}

func (s *DataClientSuite) TestLoginSuccessStoresCredentials() {
	s.Equal(artfolio.LoggedOut, s.admin.State())

	resp, err := s.admin.Login(s.ctx, artfoliotest.DefaultUsername, artfoliotest.DefaultPassword)
	s.Require().NoError(err)
	s.Equal("Login successful", resp.Message)

	creds, ok := s.store.Get()
	s.True(ok)
	s.Equal(artfolio.Credentials{Username: artfoliotest.DefaultUsername, Password: artfoliotest.DefaultPassword}, creds)
	s.True(s.admin.IsLoggedIn())
	s.Equal(artfolio.LoggedIn, s.admin.State())

	probe, _ := s.server.LastRequest()
	s.Equal("/api/admin/contacts", probe.Path)
	s.True(probe.HasAuth)
}

func (s *DataClientSuite) TestLoginFailureRollsBack() {
	_, err := s.admin.Login(s.ctx, "admin", "bad")
	s.ErrorIs(err, artfolio.ErrAuth)

	_, ok := s.store.Get()
	s.False(ok)
	s.False(s.admin.IsLoggedIn())
	s.Empty(s.nav.routes, "a rejected login must not navigate")
}

func (s *DataClientSuite) TestLoginFailureOnServerErrorRollsBack() {
	s.server.FailPath("/api/admin/contacts", http.StatusInternalServerError)

	_, err := s.admin.Login(s.ctx, artfoliotest.DefaultUsername, artfoliotest.DefaultPassword)
	s.ErrorIs(err, artfolio.ErrServer)
	s.False(s.admin.IsLoggedIn())
}

func (s *DataClientSuite) TestLogoutIsLocal() {
	s.login()
	before := len(s.server.Requests())

	s.Require().NoError(s.admin.Logout(s.ctx))

	s.False(s.admin.IsLoggedIn())
	s.Len(s.server.Requests(), before)
	s.Equal([]string{artfolio.RouteAdminLogin}, s.nav.routes)
}

func (s *DataClientSuite) TestIsLoggedInDoesNotVerify() {
	s.Require().NoError(s.store.Set(artfolio.Credentials{Username: "revoked", Password: "x"}))
	before := len(s.server.Requests())

	s.True(s.admin.IsLoggedIn())
	s.Len(s.server.Requests(), before)
}

func (s *DataClientSuite) TestRevokedCredentialsExpireOnAdminRoute() {
	s.Require().NoError(s.store.Set(artfolio.Credentials{Username: "admin", Password: "revoked"}))

	_, err := s.admin.GetContacts(artfolio.WithRoute(s.ctx, artfolio.RouteAdminContacts))
	s.ErrorIs(err, artfolio.ErrAuth)

	s.False(s.admin.IsLoggedIn())
	s.Equal([]string{artfolio.RouteAdminLogin}, s.nav.routes)
}

func (s *DataClientSuite) TestAdminCallsCarryStoredCredentials() {
	s.login()
	ctx := artfolio.WithRoute(s.ctx, artfolio.RouteAdminDashboard)

	_, err := s.admin.GetContacts(ctx)
	s.Require().NoError(err)
	_, err = s.admin.GetNewsletterSubscribers(ctx)
	s.Require().NoError(err)
	_, err = s.admin.UpdateSiteSettings(ctx, artfolio.DefaultSiteSettings())
	s.Require().NoError(err)

	for _, req := range s.server.Requests() {
		if !artfolio.IsAdminPath(req.Path) {
			continue
		}
		s.True(req.HasAuth)
		s.Equal(artfoliotest.DefaultUsername, req.Username)
		s.Equal(artfoliotest.DefaultPassword, req.Password)
	}
}

func (s *DataClientSuite) TestCreateThenGetRoundTrip() {
	s.login()
	ctx := artfolio.WithRoute(s.ctx, artfolio.RouteAdminArtworks)
	price := 120.5
	data := artfolio.Artwork{
		Title:       "Night Harbour",
		Description: "Ink on paper",
		Price:       &price,
		Category:    "urban",
		Tags:        []string{"ink", "harbour"},
		ImageURL:    "/uploads/night.png",
		EtsyURL:     "https://etsy.com/listing/1",
		GumroadURL:  "https://gumroad.com/l/night",
		Featured:    true,
	}

	resp, err := s.admin.CreateArtwork(ctx, data)
	s.Require().NoError(err)
	s.NotEmpty(resp.ID)

	got, err := s.public.GetArtwork(ctx, resp.ID)
	s.Require().NoError(err)
	s.Equal(resp.ID, got.ID)
	s.NotNil(got.CreatedAt)

	got.ID = ""
	got.CreatedAt = nil
	s.Equal(data, *got)
}

func (s *DataClientSuite) TestUpdateAndDeleteArtwork() {
	s.login()
	ctx := artfolio.WithRoute(s.ctx, artfolio.RouteAdminArtworks)

	_, err := s.admin.UpdateArtwork(ctx, "a2", artfolio.Artwork{Title: "Grid II", Category: "geometric", Tags: []string{"b"}})
	s.Require().NoError(err)
	got, err := s.public.GetArtwork(ctx, "a2")
	s.Require().NoError(err)
	s.Equal("Grid II", got.Title)

	_, err = s.admin.DeleteArtwork(ctx, "a2")
	s.Require().NoError(err)
	_, err = s.public.GetArtwork(ctx, "a2")
	s.ErrorIs(err, artfolio.ErrNotFound)

	_, err = s.admin.DeleteArtwork(ctx, "a2")
	s.ErrorIs(err, artfolio.ErrNotFound)
	s.True(s.admin.IsLoggedIn(), "a 404 must not end the session")

	_, err = s.admin.UpdateArtwork(ctx, "", artfolio.Artwork{})
	s.ErrorIs(err, artfolio.ErrValidation)
}

func (s *DataClientSuite) TestAdminGetArtworksUsesPublicListing() {
	artworks, err := s.admin.GetArtworks(s.ctx)
	s.Require().NoError(err)
	s.Len(artworks, 3)

	last, _ := s.server.LastRequest()
	s.Equal("/api/artworks", last.Path)
}

func (s *DataClientSuite) TestUploadImageUsesMultipart() {
	s.login()
	ctx := artfolio.WithRoute(s.ctx, artfolio.RouteAdminArtworks)

	img := append(append([]byte(nil), pngHeader...), bytes.Repeat([]byte{0}, 32)...)
	resp, err := s.admin.UploadImage(ctx, "sunset.png", bytes.NewReader(img))
	s.Require().NoError(err)
	s.True(strings.HasPrefix(resp.ImageURL, "/uploads/"))
	s.True(strings.HasSuffix(resp.Filename, ".png"))

	stored, ok := s.server.Upload(resp.Filename)
	s.Require().True(ok)
	s.Equal(img, stored)

	upload, _ := s.server.LastRequest()
	s.True(strings.HasPrefix(upload.ContentType, "multipart/form-data; boundary="))
	s.True(upload.HasAuth)

	// the override applies to that one call only
	_, err = s.admin.UpdateSiteSettings(ctx, artfolio.DefaultSiteSettings())
	s.Require().NoError(err)
	next, _ := s.server.LastRequest()
	s.Equal("application/json", next.ContentType)
}

func (s *DataClientSuite) TestUploadRejectsNonImage() {
	s.login()
	_, err := s.admin.UploadImage(s.ctx, "notes.txt", strings.NewReader("just text"))
	s.ErrorIs(err, artfolio.ErrValidation)

	_, err = s.admin.UploadImage(s.ctx, "empty.png", bytes.NewReader(nil))
	s.ErrorIs(err, artfolio.ErrValidation)
}

func (s *DataClientSuite) TestSettingsWholeRecordReplace() {
	s.login()
	ctx := artfolio.WithRoute(s.ctx, artfolio.RouteAdminSettings)

	defaults, err := s.public.GetSiteSettings(ctx)
	s.Require().NoError(err)
	s.Equal(artfolio.DefaultSiteSettings(), *defaults)

	full := artfolio.SiteSettings{
		SiteTitle:    "Studio Mira",
		ArtistName:   "Mira K.",
		Bio:          "",
		HeroTitle:    "Prints & originals",
		HeroSubtitle: "",
		EtsyShopURL:  "https://etsy.com/shop/mira",
		GumroadURL:   "",
		ContactEmail: "mira@example.com",
	}
	_, err = s.admin.UpdateSiteSettings(ctx, full)
	s.Require().NoError(err)

	got, err := s.public.GetSiteSettings(ctx)
	s.Require().NoError(err)
	s.Equal(full, *got)
}

func TestDataClientSuite(t *testing.T) {
	suite.Run(t, new(DataClientSuite))
}
