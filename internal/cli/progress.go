package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

type progressReporter struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	label   string
	total   int
	count   int
	spinner int
	lastLen int
}

func newProgressReporter(out io.Writer, label string, total int, asJSON bool) *progressReporter {
	return &progressReporter{
		out:     out,
		enabled: isTerminal(out) && !asJSON,
		label:   label,
		total:   total,
	}
}

// Update is safe to call from concurrent workers.
func (r *progressReporter) Update(file string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++
	if !r.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[r.spinner%len(frames)]
	r.spinner++
	file = strings.TrimSpace(file)
	if len(file) > 88 {
		file = "..." + file[len(file)-85:]
	}

	status := fmt.Sprintf("%s %s %d %s", frame, r.label, r.count, file)
	if r.total > 0 {
		status = fmt.Sprintf("%s %s %d/%d %s", frame, r.label, r.count, r.total, file)
	}
	r.printStatus(status)
}

// Done clears the status line.
func (r *progressReporter) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.enabled || r.lastLen == 0 {
		return
	}
	fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", r.lastLen))
	r.lastLen = 0
}

func (r *progressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status = status + strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(r.out, "\r%s", status)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
