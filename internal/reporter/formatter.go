package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

const SEPARATOR_CHAR = "-"

// Returns the width of the terminal. If it cannot be determined, it returns
// a default value of 80.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Prints a separator line with a title.
// The title is more or less left aligned.
//
// Example:
//
//	--- MyTitle ---------------------------------------
func printSeparatorWithTitle(w io.Writer, title string) {
	width := termWidth()
	preTitle := "--- "
	titleWidth := len(title) + len(preTitle)
	separatorWidth := width - titleWidth - 1
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	// Print the title
	fmt.Fprintf(w, "%s%s %s\n", preTitle, title, strings.Repeat(SEPARATOR_CHAR, separatorWidth))
}

// Prints a separator line.
func printSeparator(w io.Writer) {
	fmt.Fprintf(w, "%s\n", strings.Repeat(SEPARATOR_CHAR, termWidth()))
}

// Writes text under a heading, indenting every line.
func printIndented(w io.Writer, heading string, text string) {
	fmt.Fprintf(w, "%s:\n", heading)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

// Writes captured stream content verbatim under a heading.
func printStream(w io.Writer, heading string, content string, total int64, truncated bool) {
	if truncated {
		fmt.Fprintf(w, "%s (last %s of %s):\n", heading,
			humanize.IBytes(uint64(len(content))),
			humanize.IBytes(uint64(total)),
		)
	} else {
		fmt.Fprintf(w, "%s:\n", heading)
	}

	io.WriteString(w, content)
	if !strings.HasSuffix(content, "\n") {
		io.WriteString(w, "\n")
	}
}

// Formats a duration in seconds with one decimal place.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
