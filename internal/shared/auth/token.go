package auth

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerHeader returns the outbound header set for token. An empty token yields an empty set.
func BearerHeader(token string) http.Header {
	header := http.Header{}
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		header.Set("Authorization", bearerPrefix+trimmed)
	}
	return header
}

// ExtractBearerToken extracts the JWT token from the Authorization header.
// It handles the "Bearer " prefix and returns an empty string if no token is present.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader extracts the JWT token from an Authorization header value.
//
// Example:
//
//	token := ExtractBearerTokenFromHeader("Bearer eyJhbGciOiJIUzI1NiIs...")
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return ""
}

// MergeHeaders copies every value of src into dst.
func MergeHeaders(dst, src http.Header) {
	for key, values := range src {
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
