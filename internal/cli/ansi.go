package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/chromacube/chromacube/internal/colorspace"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColorPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
// Uses background colour with spaces for a solid block.
func ColorPreview(c colorspace.RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	// Build ANSI background colour escape sequence.
	bgColor := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)

	// Create solid colour block using spaces with background colour.
	block := strings.Repeat(" ", width)

	return bgColor + block + ansiReset
}

// ColorPreviewWithText returns a colour preview with text overlay.
// The text colour is chosen to have good contrast with the background.
func ColorPreviewWithText(c colorspace.RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	// Determine foreground colour for good contrast.
	lum := colorspace.RelativeLuminance(c)
	var fgR, fgG, fgB uint8
	if lum > 0.5 {
		// Light background, use dark text.
		fgR, fgG, fgB = 0, 0, 0
	} else {
		// Dark background, use light text.
		fgR, fgG, fgB = 255, 255, 255
	}

	bgColor := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgColor := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fgR, fgG, fgB, ansiSuffix)

	// Pad or truncate text to fit width.
	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bgColor + fgColor + displayText + ansiReset
}

// FormatColorWithPreview formats a colour with its preview and hex code.
func FormatColorWithPreview(c colorspace.RGB, width int) string {
	return fmt.Sprintf("%s %s", ColorPreview(c, width), c.Hex())
}

// SupportsANSIColors reports whether stdout is likely to render ANSI
// truecolour escapes: it must be a terminal and TERM must not be dumb.
func SupportsANSIColors() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
