package pwbrowser

import (
	"os"
)

// ResolveExecutablePath resolves the browser binary override: explicit option
// first, then the CHROME_PATH environment variable. An empty result means
// Playwright's bundled Chromium is used.
func ResolveExecutablePath(optionPath string) string {
	if optionPath != "" {
		return optionPath
	}
	return os.Getenv("CHROME_PATH")
}
