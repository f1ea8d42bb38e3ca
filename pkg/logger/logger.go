// Package logger configura o zerolog da aplicação: console legível em
// desenvolvimento, JSON em produção, com o nome do serviço em todo evento.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opções do logger.
type Config struct {
	Env     string // development -> console legível; qualquer outro -> JSON
	Level   string // debug, info, warn, error
	Service string // carimbado como campo "service" em todo evento
}

// Logger é o wrapper injetado nos componentes que precisam logar.
type Logger struct {
	zl zerolog.Logger
}

// New cria o logger estruturado da aplicação. Também redireciona o logger
// global do zerolog, para bibliotecas que o usem.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With deriva um sublogger com campos fixos.
func (l *Logger) With() zerolog.Context { return l.zl.With() }
