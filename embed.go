// Package contactcsv provides embedded runtime resources.
package contactcsv

import (
	_ "embed"
	"strings"
)

//go:embed banner.txt
var rawBanner string

// Banner is the startup banner art without its trailing newline.
var Banner = strings.TrimRight(rawBanner, "\n")

// Subtitle is printed beneath the banner.
const Subtitle = "1.0 - Built with Go"
