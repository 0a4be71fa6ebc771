package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a console logger tagged with the originating module name.
func New(module string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:           os.Stderr,
		TimeFormat:    "15:04",
		PartsOrder:    []string{"time", "level", "module", "message"},
		FieldsExclude: []string{"module"},
	}

	out.FormatPartValueByName = func(i any, s string) string {
		if s == "module" && i != nil {
			return strings.ToUpper(fmt.Sprintf("%s", i))
		}
		return ""
	}

	logger := zerolog.New(out).
		With().
		Timestamp().
		Str("module", module).
		Logger()

	return logger
}
