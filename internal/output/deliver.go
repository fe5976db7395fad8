package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no clipboard backend exists
var ErrClipboardUnavailable = errors.New("no clipboard utility available")

// ClipboardWriter copies text to a clipboard
type ClipboardWriter func(text string) error

// SystemClipboard writes to the OS clipboard
func SystemClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Delivery records where the payload ended up.
type Delivery struct {
	Clipboard    bool
	ClipboardErr error
}

// Deliver copies markdown to the clipboard when requested and prints it to
// stdout otherwise, including when the clipboard write fails.
func Deliver(markdown string, useClipboard bool, stdout io.Writer, write ClipboardWriter) (Delivery, error) {
	var d Delivery
	if useClipboard {
		if write == nil {
			write = SystemClipboard
		}
		err := write(markdown)
		if err == nil {
			d.Clipboard = true
			return d, nil
		}
		d.ClipboardErr = err
	}

	if _, err := io.WriteString(stdout, markdown); err != nil {
		return d, fmt.Errorf("failed to write output: %w", err)
	}
	return d, nil
}
