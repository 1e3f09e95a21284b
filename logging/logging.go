// Package logging configures the editor's logrus logger and keeps the catalogue
// of user-facing log messages in one place.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Message texts logged by the editor.
const (
	AddingTexture  = "Adding texture:"
	BrushNotSet    = "Brush not set. Please select a tile brush before adding a tile"
	BrushSelected  = "Brush selected:"
	Clipping       = "Clipping mode is"
	Drag           = "Drag drawing mode is"
	Editing        = "Editing mode is"
	Safety         = "Safety mode is"
	FailedTexture  = "Failed to load texture:"
	LoadingTexture = "Texture loaded..."
	RemovePosition = "Removed texture at:"
	RenderPosition = "Rendered texture at:"
	SeriousAction  = "Are you sure?. This action cannot be undone."
	Trash          = "Trash mode is"
)

// New builds a logger writing to out (stdout when nil). Debug enables debug level.
func New(debug bool, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// Component returns a child logger tagged with the component name. A nil
// parent falls back to the logrus standard logger.
func Component(parent logrus.FieldLogger, name string) logrus.FieldLogger {
	if parent == nil {
		parent = logrus.StandardLogger()
	}
	return parent.WithField("component", name)
}

// OnOff renders a flag for the mode messages ("Editing mode is on").
func OnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
