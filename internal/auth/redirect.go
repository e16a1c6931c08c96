package auth

import "strings"

// IsLocalPath validates that a redirect path is local to prevent open redirect attacks.
func IsLocalPath(path string) bool {
	if path == "" || !strings.HasPrefix(path, "/") {
		return false
	}
	// Protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") || strings.Contains(path, "\\") {
		return false
	}
	return true
}

// SanitizeRedirectPath returns path when it is local, fallback otherwise.
func SanitizeRedirectPath(path, fallback string) string {
	if IsLocalPath(path) {
		return path
	}
	return fallback
}
