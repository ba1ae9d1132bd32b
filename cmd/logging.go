package cmd

import (
	"context"
	"io"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/pkg/config"
)

var levelPrefixes = []struct {
	prefix string
	level  slog.Level
}{
	{"[DEBUG]", slog.LevelDebug},
	{"[INFO]", slog.LevelInfo},
	{"[WARNING]", slog.LevelWarn},
	{"[ERROR]", slog.LevelError},
}

// configureLogging points the standard logger at out, as text or JSON lines
func configureLogging(cfg config.LoggingConfig, out io.Writer) {
	debug := strings.EqualFold(cfg.Level, "debug")
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.JSON {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		bridge := slog.NewLogLogger(levelPrefixHandler{newJSONHandler(out, level)}, slog.LevelInfo)
		log.SetFlags(0)
		log.SetOutput(bridge.Writer())
		gin.DefaultWriter = log.Writer()
		return
	}

	log.SetFlags(log.LstdFlags | log.LUTC)
	log.SetOutput(out)
}

func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	})
}

// levelPrefixHandler turns the "[LEVEL] " prefix of bridged log lines into
// the record level and drops records below the inner handler's level
type levelPrefixHandler struct {
	slog.Handler
}

func (h levelPrefixHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, p := range levelPrefixes {
		if msg, ok := strings.CutPrefix(r.Message, p.prefix); ok {
			r.Message = strings.TrimSpace(msg)
			r.Level = p.level
			break
		}
	}
	if !h.Handler.Enabled(ctx, r.Level) {
		return nil
	}
	return h.Handler.Handle(ctx, r)
}

func (h levelPrefixHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelPrefixHandler{h.Handler.WithAttrs(attrs)}
}

func (h levelPrefixHandler) WithGroup(name string) slog.Handler {
	return levelPrefixHandler{h.Handler.WithGroup(name)}
}
