// Package logger configura zerolog para todo el proceso: formato según el
// entorno, nivel mínimo y el campo servicio en cada evento.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env     string    // development -> consola legible; cualquier otro -> JSON
	Level   string    // trace, debug, info, warn, error; inválido cae a info
	Service string    // se agrega como campo "servicio" en cada evento
	Out     io.Writer // destino; nil usa stdout
}

// New crea el logger del proceso y redirige el logger global de zerolog, de
// modo que los casos de uso puedan loguear vía zerolog/log sin inyección.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("servicio", cfg.Service).
		Logger()

	log.Logger = zl
	return zl
}
