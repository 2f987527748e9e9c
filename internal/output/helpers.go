package output

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/tanq16/recipeqa/internal/utils"
	"golang.org/x/term"
)

func FormatSpeed(bytes int64, elapsed float64) string {
	if elapsed <= 0 {
		return "0 B/s"
	}
	bps := float64(bytes) / elapsed
	return utils.FormatBytes(uint64(bps)) + "/s"
}

// PrintProgressBar renders a bar for current/total. A non-positive total renders an empty bar.
func PrintProgressBar(current, total int64, width int) string {
	if width <= 0 {
		width = 30
	}
	percent := 0.0
	if total > 0 {
		current = max(0, min(current, total))
		percent = float64(current) / float64(total)
	}
	filled := max(0, min(int(percent*float64(width)), width))
	bar := StyleSymbols["bullet"]
	bar += strings.Repeat(StyleSymbols["hline"], filled)
	bar += strings.Repeat(" ", width-filled)
	bar += StyleSymbols["bullet"]
	return debugStyle.Render(fmt.Sprintf("%s %.1f%% %s ", bar, percent*100, StyleSymbols["bullet"]))
}

func getTerminalHeight() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		return 24
	}
	return height
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// truncateLabel keeps the tail of a label so it fits maxWidth runes.
func truncateLabel(label string, maxWidth int) string {
	if maxWidth <= 3 || utf8.RuneCountInString(label) <= maxWidth {
		return label
	}
	runes := []rune(label)
	return "..." + string(runes[len(runes)-(maxWidth-3):])
}

func formatSize(n int64) string {
	return utils.FormatBytes(uint64(max(0, n)))
}
