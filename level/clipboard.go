package level

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// ErrClipboardUnavailable is returned when the system clipboard cannot be
// initialised, for example on a headless machine.
var ErrClipboardUnavailable = errors.New("level: clipboard unavailable")

// Clipboard receives exported level JSON.
type Clipboard interface {
	WriteText(data []byte) error
}

type systemClipboard struct {
	once sync.Once
	err  error
}

var system = &systemClipboard{}

func (c *systemClipboard) WriteText(data []byte) error {
	c.once.Do(func() { c.err = clipboard.Init() })
	if c.err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, c.err)
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// CopyToClipboard puts l on the system clipboard as JSON.
func CopyToClipboard(l *Level) error {
	return CopyTo(system, l)
}

// CopyTo writes l as JSON to cb.
func CopyTo(cb Clipboard, l *Level) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return cb.WriteText(data)
}
