package avatar

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/linkbio/linkbio/internal/config"
)

const (
	gravatarBaseURL  = "https://www.gravatar.com/avatar/"
	identiconBaseURL = "https://api.dicebear.com/8.x/identicon/svg"
)

// Gravatar returns the Gravatar URL for email.
// Returns an empty string if Gravatar is disabled or email is empty.
func Gravatar(email string, cfg *config.GravatarConfig) string {
	email = strings.TrimSpace(strings.ToLower(email))
	if cfg == nil || !cfg.Enabled || email == "" {
		return ""
	}

	hash := sha256.Sum256([]byte(email))
	u := gravatarBaseURL + hex.EncodeToString(hash[:])

	params := url.Values{}
	if cfg.DefaultImage != "" {
		params.Add("d", cfg.DefaultImage)
	}
	if cfg.Rating != "" {
		params.Add("r", cfg.Rating)
	}
	if cfg.Size > 0 {
		params.Add("s", strconv.Itoa(cfg.Size))
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// Identicon returns the URL of a generated identicon seeded by seed.
// The public profile uses it so that visitors never need an email address.
func Identicon(seed string) string {
	return identiconBaseURL + "?seed=" + url.QueryEscape(seed)
}

var validDefaultImages = map[string]bool{
	"404":       true,
	"mp":        true,
	"identicon": true,
	"monsterid": true,
	"wavatar":   true,
	"retro":     true,
	"robohash":  true,
	"blank":     true,
}

var validRatings = map[string]bool{
	"g":  true,
	"pg": true,
	"r":  true,
	"x":  true,
}

// IsValidDefaultImage checks if the provided default image value is valid for Gravatar.
func IsValidDefaultImage(defaultImage string) bool {
	return validDefaultImages[defaultImage]
}

// IsValidRating checks if the provided rating value is valid for Gravatar.
func IsValidRating(rating string) bool {
	return validRatings[rating]
}

// IsValidSize checks if the provided size value is valid for Gravatar (1-2048 pixels).
func IsValidSize(size int) bool {
	return size >= 1 && size <= 2048
}
