package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/25smoking/aggsynth/internal/core"
	"github.com/25smoking/aggsynth/internal/dataset"
)

// ANSI colour codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

const (
	IconSuccess = "✓"
	IconSkip    = "↷"
	IconInfo    = "ℹ"
)

const Banner = `
   __ _  __ _  __ _ ___ _   _ _ __ | |_| |__
  / _' |/ _' |/ _' / __| | | | '_ \| __| '_ \
 | (_| | (_| | (_| \__ \ |_| | | | | |_| | | |
  \__,_|\__, |\__, |___/\__, |_| |_|\__|_| |_|
        |___/ |___/     |___/
  synthetic aggregate data from attributed graphs`

// Console prints human-oriented output. Colour is optional so the same
// output can be captured in tests.
type Console struct {
	out       io.Writer
	color     bool
	startTime time.Time
}

func NewConsole(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color, startTime: time.Now()}
}

func (c *Console) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + ColorReset
}

func (c *Console) PrintBanner() {
	fmt.Fprintln(c.out, c.paint(ColorCyan, Banner))
	fmt.Fprintln(c.out)
}

func (c *Console) PrintSection(title string) {
	line := strings.Repeat("─", 65)
	fmt.Fprintln(c.out, c.paint(ColorBlue, "┌"+line+"┐"))
	fmt.Fprintf(c.out, "%s %s %s\n", c.paint(ColorBlue, "│"), c.paint(ColorBold, fmt.Sprintf("%-63s", title)), c.paint(ColorBlue, "│"))
	fmt.Fprintln(c.out, c.paint(ColorBlue, "└"+line+"┘"))
}

// PrintKV prints an aligned key/value line.
func (c *Console) PrintKV(key string, value any) {
	fmt.Fprintf(c.out, "  %s %v\n", c.paint(ColorDim, fmt.Sprintf("%-14s", key+":")), value)
}

// PrintResult summarises a dataset run.
func (c *Console) PrintResult(res dataset.Result, counters core.Counters) {
	if res.Skipped {
		fmt.Fprintf(c.out, "%s %s exists, skipped (use --force to regenerate)\n",
			c.paint(ColorYellow, IconSkip), res.Path)
		return
	}

	fmt.Fprintf(c.out, "%s %s: %s rows in %s\n",
		c.paint(ColorGreen, IconSuccess), res.Path,
		c.paint(ColorBold, fmt.Sprint(res.Rows)),
		c.paint(ColorDim, fmt.Sprintf("%.2fs", res.Duration.Seconds())))

	ratio := 0.0
	if counters.Attempts > 0 {
		ratio = float64(counters.DeadEnds) / float64(counters.Attempts)
	}
	fmt.Fprintf(c.out, "%s walks: %d, dead ends: %d (%.1f%%)\n",
		c.paint(ColorCyan, IconInfo), counters.Attempts, counters.DeadEnds, ratio*100)
}

func (c *Console) PrintSummary() {
	duration := time.Since(c.startTime)
	c.PrintKV("started", c.startTime.Format("2006-01-02 15:04:05"))
	c.PrintKV("elapsed", fmt.Sprintf("%.2fs", duration.Seconds()))
}
