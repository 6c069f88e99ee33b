package instagram

import (
	"strings"
)

const (
	// BaseURL is the base URL for Instagram
	BaseURL = "https://www.instagram.com"
)

// ProfileURL constructs the public profile URL for an account handle
func ProfileURL(base, account string) string {
	if base == "" {
		base = BaseURL
	}
	return strings.TrimRight(base, "/") + "/" + account + "/"
}

// Canonicalize normalizes a post link into its canonical form: absolute,
// query string stripped, trailing slash stripped. Relative paths are
// prefixed with the site base URL. Returns false for links that cannot
// identify a page (empty, fragment-only, javascript:).
func Canonicalize(base, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return "", false
	}

	if base == "" {
		base = BaseURL
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	} else if strings.HasPrefix(href, "/") {
		href = strings.TrimRight(base, "/") + href
	}

	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimRight(href, "/")
	if href == "" {
		return "", false
	}
	return href, true
}

// IsPostURL reports whether a link points at an individual post or reel
func IsPostURL(url string) bool {
	return strings.Contains(url, "/p/") || strings.Contains(url, "/reel/")
}

// IsValidUsername checks if a handle is valid according to Instagram rules
func IsValidUsername(username string) bool {
	if username == "" || len(username) > 30 {
		return false
	}

	// Usernames can only contain letters, numbers, periods, and underscores
	for _, char := range username {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '.' || char == '_') {
			return false
		}
	}

	return true
}

// SanitizeUsername removes decoration from a handle as typed by a user
func SanitizeUsername(username string) string {
	username = strings.TrimSpace(username)
	username = strings.TrimPrefix(username, "@")
	username = strings.TrimRight(username, "/ ")
	return username
}
