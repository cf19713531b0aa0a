// Package version holds build information set through ldflags.
package version

var (
	// Version is the released version of artfolio.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
)

// UserAgent is sent with every backend request.
func UserAgent() string {
	return "artfolio/" + Version
}
