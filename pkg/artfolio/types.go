package artfolio

import (
	"strconv"
	"strings"
	"time"
)

// Categories known to the admin console. The backend accepts any string.
var Categories = []string{"abstract", "landscape", "portrait", "geometric", "nature", "urban"}

// Artwork is a single gallery piece.
type Artwork struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       *float64   `json:"price,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	ImageURL    string     `json:"image_url"`
	EtsyURL     string     `json:"etsy_url,omitempty"`
	GumroadURL  string     `json:"gumroad_url,omitempty"`
	Featured    bool       `json:"featured"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SiteSettings is the singleton settings record. It is always replaced as a
// whole.
type SiteSettings struct {
	SiteTitle    string `json:"site_title" toml:"site_title"`
	ArtistName   string `json:"artist_name" toml:"artist_name"`
	Bio          string `json:"bio" toml:"bio"`
	HeroTitle    string `json:"hero_title" toml:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle" toml:"hero_subtitle"`
	EtsyShopURL  string `json:"etsy_shop_url" toml:"etsy_shop_url"`
	GumroadURL   string `json:"gumroad_url" toml:"gumroad_url"`
	ContactEmail string `json:"contact_email" toml:"contact_email"`
}

// DefaultSiteSettings returns the record the backend creates on first read.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteTitle:    "Digital Artist Portfolio",
		ArtistName:   "Artist Name",
		Bio:          "Artist bio goes here",
		HeroTitle:    "Welcome to my world of digital art",
		HeroSubtitle: "Discover unique wall art and printables",
		EtsyShopURL:  "https://etsy.com/shop/YourShopName",
		GumroadURL:   "https://gumroad.com/YourName",
		ContactEmail: "youremail@example.com",
	}
}

// ContactForm is the body of a contact submission.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// NewsletterSignup is the body of a newsletter subscription.
type NewsletterSignup struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// MessageResponse is what the backend answers to writes. ID is set on create.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// UploadResponse is the answer to an image upload.
type UploadResponse struct {
	ImageURL string `json:"image_url"`
	Filename string `json:"filename"`
}

type artworksResponse struct {
	Artworks []Artwork `json:"artworks"`
}

type contactsResponse struct {
	Contacts []ContactMessage `json:"contacts"`
}

type subscribersResponse struct {
	Subscribers []Subscriber `json:"subscribers"`
}

// ParseTags splits a comma separated tag list, trimming whitespace and
// dropping empty entries.
func ParseTags(s string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParsePrice parses a decimal price. Anything unparsable becomes 0.
func ParsePrice(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
