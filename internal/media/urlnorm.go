package media

import (
	"net/url"
	"strings"
)

// NormalizeImageURL cleans a user-supplied image URL. When someone pastes
// a search-engine "View Image" proxy link (/imgres?...imgurl=...), the
// real target URL is extracted; anything else passes through untouched.
func NormalizeImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	// google.com, google.com.vn, and friends
	if strings.Contains(u.Host, "google.") && strings.HasPrefix(u.Path, "/imgres") {
		if target := u.Query().Get("imgurl"); target != "" {
			return target
		}
	}

	return raw
}
