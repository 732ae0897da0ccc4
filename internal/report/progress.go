package report

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar renders generation progress on a terminal line. It satisfies
// dataset.Progress.
type ProgressBar struct {
	out  io.Writer
	desc string
	bar  *progressbar.ProgressBar
}

func NewProgressBar(out io.Writer, desc string) *ProgressBar {
	return &ProgressBar{out: out, desc: desc}
}

// Start replaces any previous bar. A zero total draws nothing.
func (p *ProgressBar) Start(total int) {
	p.bar = nil
	if total <= 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription(p.desc),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.out)
		}),
	)
}

func (p *ProgressBar) Advance(n int) {
	if p.bar != nil {
		_ = p.bar.Add(n)
	}
}

func (p *ProgressBar) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
