package utils

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// OpenURL opens a link in the default browser.
func OpenURL(rawURL string) error {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return exec.Command("xdg-open", rawURL).Start()
	}
}

// ProfileURL builds the canonical profile link for a platform handle.
func ProfileURL(platform, handle string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if platform == "tiktok" {
		return "https://www.tiktok.com/@" + handle
	}
	return "https://instagram.com/" + handle
}
