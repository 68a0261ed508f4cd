package main

import (
	"fmt"
	"io"

	kitlog "github.com/go-kit/log"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/pgtemporal/pgtemporal/log/kitlogadapter"
	"github.com/pgtemporal/pgtemporal/log/log15adapter"
	"github.com/pgtemporal/pgtemporal/log/logrusadapter"
	"github.com/pgtemporal/pgtemporal/log/zapadapter"
	"github.com/pgtemporal/pgtemporal/log/zerologadapter"
	"github.com/pgtemporal/pgtemporal/multitracer"
	"github.com/pgtemporal/pgtemporal/pgtype"
	"github.com/pgtemporal/pgtemporal/tracelog"
)

// newLogger builds the tracelog.Logger for format writing to w.
func newLogger(format string, w io.Writer) (tracelog.Logger, error) {
	switch format {
	case "zap":
		core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), zapcore.DebugLevel)
		return zapadapter.NewLogger(zap.New(core)), nil
	case "zerolog":
		return zerologadapter.NewLogger(zerolog.New(w).With().Timestamp().Logger()), nil
	case "logrus":
		l := logrus.New()
		l.Out = w
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.JSONFormatter{})
		return logrusadapter.NewLogger(l), nil
	case "log15":
		l := log15.New()
		l.SetHandler(log15.StreamHandler(w, log15.LogfmtFormat()))
		return log15adapter.NewLogger(l), nil
	case "kitlog":
		return kitlogadapter.NewLogger(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// newTracer fans decode events out to one TraceLog per configured backend. It
// returns nil when logging is disabled.
func newTracer(cfg LogConfig, w io.Writer) (pgtype.DecodeTracer, error) {
	level, err := tracelog.LogLevelFromString(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	if level == tracelog.LogLevelNone {
		return nil, nil
	}

	var tracers []pgtype.DecodeTracer
	for _, format := range cfg.Formats() {
		logger, err := newLogger(format, w)
		if err != nil {
			return nil, err
		}
		tracers = append(tracers, &tracelog.TraceLog{Logger: logger, LogLevel: level})
	}
	if len(tracers) == 0 {
		return nil, nil
	}
	return multitracer.New(tracers...), nil
}
