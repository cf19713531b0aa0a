// Package artfoliotest provides an in-memory portfolio backend for tests.
package artfoliotest

import (
	"crypto/subtle"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/samber/lo"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "admin123"
)

// RecordedRequest is what the fake backend saw of an incoming request.
type RecordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	HasAuth     bool
	Username    string
	Password    string
}

// Server is a fake backend speaking the portfolio HTTP contract.
type Server struct {
	*httptest.Server

	username string
	password string

	mu          sync.Mutex
	artworks    []artfolio.Artwork
	contacts    []artfolio.ContactMessage
	subscribers []artfolio.Subscriber
	settings    *artfolio.SiteSettings
	uploads     map[string][]byte
	failures    map[string]int
	requests    []RecordedRequest
}

// Option configures a Server.
type Option func(*Server)

// WithAdmin sets the accepted admin credentials.
func WithAdmin(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

// WithArtworks seeds the artwork collection.
func WithArtworks(artworks ...artfolio.Artwork) Option {
	return func(s *Server) {
		s.artworks = append(s.artworks, artworks...)
	}
}

// WithContacts seeds the contact submissions.
func WithContacts(contacts ...artfolio.ContactMessage) Option {
	return func(s *Server) {
		s.contacts = append(s.contacts, contacts...)
	}
}

// WithSubscribers seeds the newsletter subscribers.
func WithSubscribers(subscribers ...artfolio.Subscriber) Option {
	return func(s *Server) {
		s.subscribers = append(s.subscribers, subscribers...)
	}
}

// New starts a fake backend. Callers must Close it.
func New(opts ...Option) *Server {
	s := &Server{
		username: DefaultUsername,
		password: DefaultPassword,
		uploads:  make(map[string][]byte),
		failures: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// FailPath makes every request to path answer with status until cleared with
// a status of 0.
func (s *Server) FailPath(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// Requests returns the requests seen so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Upload returns the bytes stored under filename by an upload.
func (s *Server) Upload(filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.uploads[filename]
	return data, ok
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.record(), s.injectFailures())

	api := r.Group("/api")
	api.GET("/artworks", s.listArtworks)
	api.GET("/artworks/:id", s.getArtwork)
	api.POST("/contact", s.submitContact)
	api.POST("/newsletter", s.newsletterSignup)
	api.GET("/settings", s.getSettings)

	admin := api.Group("/admin", s.requireAdmin())
	admin.POST("/artworks", s.createArtwork)
	admin.PUT("/artworks/:id", s.updateArtwork)
	admin.DELETE("/artworks/:id", s.deleteArtwork)
	admin.POST("/upload", s.upload)
	admin.GET("/contacts", s.listContacts)
	admin.GET("/newsletter", s.listSubscribers)
	admin.PUT("/settings", s.updateSettings)

	return r
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			RawQuery:    c.Request.URL.RawQuery,
			ContentType: c.GetHeader("Content-Type"),
			HasAuth:     ok,
			Username:    user,
			Password:    pass,
		})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		status, ok := s.failures[c.Request.URL.Path]
		s.mu.Unlock()
		if ok {
			c.AbortWithStatusJSON(status, gin.H{"detail": http.StatusText(status)})
			return
		}
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.password)) == 1
		if !ok || !userOK || !passOK {
			c.Header("WWW-Authenticate", "Basic")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
			return
		}
		c.Next()
	}
}

func (s *Server) listArtworks(c *gin.Context) {
	featuredOnly, _ := strconv.ParseBool(c.DefaultQuery("featured_only", "false"))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "limit must be an integer"})
		return
	}

	s.mu.Lock()
	artworks := lo.Filter(s.artworks, func(a artfolio.Artwork, _ int) bool {
		return !featuredOnly || a.Featured
	})
	s.mu.Unlock()

	if limit >= 0 && len(artworks) > limit {
		artworks = artworks[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"artworks": artworks})
}

func (s *Server) getArtwork(c *gin.Context) {
	s.mu.Lock()
	artwork, ok := lo.Find(s.artworks, func(a artfolio.Artwork) bool { return a.ID == c.Param("id") })
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Artwork not found"})
		return
	}
	c.JSON(http.StatusOK, artwork)
}

func (s *Server) submitContact(c *gin.Context) {
	var form artfolio.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Name == "" || form.Message == "" || !strings.Contains(form.Email, "@") {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid contact form"})
		return
	}
	s.mu.Lock()
	s.contacts = append(s.contacts, artfolio.ContactMessage{
		ID:          uuid.NewString(),
		Name:        form.Name,
		Email:       form.Email,
		Message:     form.Message,
		SubmittedAt: time.Now().UTC(),
	})
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Contact form submitted successfully"})
}

func (s *Server) newsletterSignup(c *gin.Context) {
	var signup artfolio.NewsletterSignup
	if err := c.ShouldBindJSON(&signup); err != nil || !strings.Contains(signup.Email, "@") {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid email"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if lo.ContainsBy(s.subscribers, func(sub artfolio.Subscriber) bool { return sub.Email == signup.Email }) {
		c.JSON(http.StatusOK, gin.H{"message": "Email already subscribed"})
		return
	}
	s.subscribers = append(s.subscribers, artfolio.Subscriber{
		ID:           uuid.NewString(),
		Email:        signup.Email,
		Name:         signup.Name,
		SubscribedAt: time.Now().UTC(),
	})
	c.JSON(http.StatusOK, gin.H{"message": "Successfully subscribed to newsletter"})
}

func (s *Server) getSettings(c *gin.Context) {
	s.mu.Lock()
	if s.settings == nil {
		defaults := artfolio.DefaultSiteSettings()
		s.settings = &defaults
	}
	settings := *s.settings
	s.mu.Unlock()
	c.JSON(http.StatusOK, settings)
}

func (s *Server) createArtwork(c *gin.Context) {
	var artwork artfolio.Artwork
	if err := c.ShouldBindJSON(&artwork); err != nil || artwork.Title == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid artwork"})
		return
	}
	now := time.Now().UTC()
	artwork.ID = uuid.NewString()
	artwork.CreatedAt = &now
	if artwork.Tags == nil {
		artwork.Tags = []string{}
	}
	s.mu.Lock()
	s.artworks = append(s.artworks, artwork)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Artwork created successfully", "id": artwork.ID})
}

func (s *Server) updateArtwork(c *gin.Context) {
	var artwork artfolio.Artwork
	if err := c.ShouldBindJSON(&artwork); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid artwork"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(s.artworks, func(a artfolio.Artwork) bool { return a.ID == c.Param("id") })
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Artwork not found"})
		return
	}
	artwork.ID = s.artworks[idx].ID
	artwork.CreatedAt = s.artworks[idx].CreatedAt
	s.artworks[idx] = artwork
	c.JSON(http.StatusOK, gin.H{"message": "Artwork updated successfully"})
}

func (s *Server) deleteArtwork(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(s.artworks, func(a artfolio.Artwork) bool { return a.ID == c.Param("id") })
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Artwork not found"})
		return
	}
	s.artworks = append(s.artworks[:idx], s.artworks[idx+1:]...)
	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted successfully"})
}

func (s *Server) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "file is required"})
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "File must be an image"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer f.Close() //nolint:errcheck
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if ext == "" {
		ext = "bin"
	}
	filename := uuid.NewString() + "." + ext
	s.mu.Lock()
	s.uploads[filename] = data
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"image_url": "/uploads/" + filename, "filename": filename})
}

func (s *Server) listContacts(c *gin.Context) {
	s.mu.Lock()
	contacts := append([]artfolio.ContactMessage(nil), s.contacts...)
	s.mu.Unlock()
	sort.SliceStable(contacts, func(i, j int) bool { return contacts[i].SubmittedAt.After(contacts[j].SubmittedAt) })
	c.JSON(http.StatusOK, gin.H{"contacts": lo.Ternary(contacts == nil, []artfolio.ContactMessage{}, contacts)})
}

func (s *Server) listSubscribers(c *gin.Context) {
	s.mu.Lock()
	subscribers := append([]artfolio.Subscriber(nil), s.subscribers...)
	s.mu.Unlock()
	sort.SliceStable(subscribers, func(i, j int) bool { return subscribers[i].SubscribedAt.After(subscribers[j].SubscribedAt) })
	c.JSON(http.StatusOK, gin.H{"subscribers": lo.Ternary(subscribers == nil, []artfolio.Subscriber{}, subscribers)})
}

func (s *Server) updateSettings(c *gin.Context) {
	var settings artfolio.SiteSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid settings"})
		return
	}
	s.mu.Lock()
	s.settings = &settings
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
}
