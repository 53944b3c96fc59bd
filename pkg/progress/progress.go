// pkg/progress/progress.go
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"
)

// Options configures a Tracker
type Options struct {
	Enabled bool      // Draw the spinner at all
	Output  io.Writer // Where the spinner and summary are written
	Color   bool      // Colorize the summary
}

// DefaultOptions returns the default options for a tracker
func DefaultOptions() *Options {
	return &Options{
		Enabled: true,
		Output:  os.Stderr,
		Color:   true,
	}
}

// Summary counts what a run did. Counts are informational only.
type Summary struct {
	DirsCreated int
	Uploaded    int
	Replaced    int
	Unchanged   int
	Ignored     int
	DirsSkipped int
	BytesSent   int64
}

// Mutations returns the number of remote mutations recorded.
func (s Summary) Mutations() int {
	return s.DirsCreated + s.Uploaded + s.Replaced
}

// Tracker shows a spinner while the tree is walked and keeps the run summary.
type Tracker struct {
	bar       *progressbar.ProgressBar
	out       io.Writer
	color     bool
	startTime time.Time
	nowFunc   func() time.Time // For testing

	Summary Summary
}

// New creates a tracker; a nil opts uses DefaultOptions.
func New(opts *Options) *Tracker {
	if opts == nil {
		opts = DefaultOptions()
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}

	barOut := out
	if !opts.Enabled {
		barOut = io.Discard
	}

	t := &Tracker{
		out:     out,
		color:   opts.Color,
		nowFunc: time.Now,
		bar: progressbar.NewOptions(-1, // Use -1 for an indeterminate progress bar (spinner)
			progressbar.OptionSetDescription("Syncing..."),
			progressbar.OptionSetWriter(barOut),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetWidth(15),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount(),
		),
	}
	t.startTime = t.nowFunc()
	return t
}

// EnterDir updates the spinner description with the directory being processed.
func (t *Tracker) EnterDir(relPath string) {
	if relPath == "" || relPath == "." {
		relPath = "/"
	}
	t.bar.Describe(fmt.Sprintf("Syncing %s", truncate(relPath, 40)))
}

// Entry counts one processed local entry.
func (t *Tracker) Entry() {
	if err := t.bar.Add(1); err != nil {
		slog.Debug("progress bar update failed", "error", err)
	}
}

// Finish clears the spinner and writes the summary.
func (t *Tracker) Finish(dryRun bool) error {
	if err := t.bar.Finish(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(t.out, t.render(dryRun))
	return err
}

// render builds the summary line
func (t *Tracker) render(dryRun bool) string {
	s := t.Summary
	var elements []string

	title := "[light_blue]Sync complete[reset]"
	if dryRun {
		title = "[light_blue]Dry run complete[reset] [yellow](nothing was changed)[reset]"
	}
	elements = append(elements, title)

	if s.Mutations() == 0 {
		elements = append(elements, "[green]already up to date[reset]")
	}
	elements = append(elements,
		fmt.Sprintf("[green]%d created[reset]", s.DirsCreated),
		fmt.Sprintf("[green]%d uploaded[reset]", s.Uploaded),
		fmt.Sprintf("[yellow]%d replaced[reset]", s.Replaced),
		fmt.Sprintf("[white]%d unchanged[reset]", s.Unchanged),
	)
	if s.Ignored > 0 {
		elements = append(elements, fmt.Sprintf("[dark_gray]%d ignored[reset]", s.Ignored))
	}
	if s.DirsSkipped > 0 {
		elements = append(elements, fmt.Sprintf("[dark_gray]%d dirs skipped[reset]", s.DirsSkipped))
	}
	elements = append(elements,
		fmt.Sprintf("[cyan]%s sent[reset]", humanize.Bytes(uint64(s.BytesSent))),
		fmt.Sprintf("[cyan]%s[reset]", formatDuration(t.nowFunc().Sub(t.startTime))),
	)

	line := strings.Join(elements, " ")
	colorizer := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !t.color,
		Reset:   true,
	}
	return colorizer.Color(line)
}

// formatDuration formats a duration as a human-readable string
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// truncate keeps the tail of s within maxLen bytes, cutting on a rune boundary.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	start := len(s) - maxLen + 3
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return "..." + s[start:]
}
