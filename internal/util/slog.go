package util

import (
	"github.com/lmittmann/tint"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ConfigureSlog installs a tint handler as the default logger.
// File sources are made relative to the working dir so IDEs can pick them up.
func ConfigureSlog(w io.Writer, level slog.Leveler, noColor bool) {
	opts := &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
		AddSource:  true,
	}
	wd, err := os.Getwd()
	if err == nil {
		unixPath := filepath.ToSlash(wd)
		opts.ReplaceAttr = func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key != slog.SourceKey {
				return attr
			}
			source, ok := attr.Value.Any().(*slog.Source)
			if !ok {
				return attr
			}
			var sb strings.Builder
			sb.WriteString(".")
			sb.WriteString(strings.TrimPrefix(filepath.ToSlash(source.File), unixPath))
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(source.Line))
			return slog.String(attr.Key, sb.String())
		}
	}
	slog.SetDefault(slog.New(tint.NewHandler(w, opts)))
	if err != nil {
		slog.Warn("Unable to find working dir, logging absolute source paths", "err", err)
	}
}
