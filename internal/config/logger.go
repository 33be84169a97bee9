package config

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger cria o logger JSON do serviço e o define como default do slog.
func InitLogger(level slog.Level, svc string) *slog.Logger {
	l := newLogger(os.Stdout, level, svc)
	slog.SetDefault(l)
	return l
}

func newLogger(w io.Writer, level slog.Level, svc string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.TimeValue(a.Value.Time().UTC())
			}
			return a
		},
	})
	return slog.New(h).With("svc", svc)
}
