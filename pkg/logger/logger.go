// Package logger creates the structured logger and wraps HTTP handlers so
// every request is logged with its status and duration.
package logger

import (
	"io"
	"net/http"
	"os"
	"time"

	// Packages
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Logger struct {
	*zap.Logger
}

// responseWriter records the status code and number of bytes written
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a logger which writes to stderr. In debug mode the output is
// human-readable and includes debug messages, otherwise it is JSON.
func New(debug bool) *Logger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter returns a logger which writes to w
func NewWithWriter(w io.Writer, debug bool) *Logger {
	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	level := zapcore.InfoLevel
	if debug {
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(config)
		level = zapcore.DebugLevel
	} else {
		encoder = zapcore.NewJSONEncoder(config)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return &Logger{
		Logger: zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WrapFunc logs the method, path, status and duration of each request
// handled by next. Server errors are logged at error level.
func (l *Logger) WrapFunc(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}
		next(rw, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rw.Status()),
			zap.Int("size", rw.size),
			zap.Duration("duration", time.Since(start)),
		}
		if rw.Status() >= http.StatusInternalServerError {
			l.Error("request", fields...)
		} else {
			l.Info("request", fields...)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// RESPONSE WRITER

func (rw *responseWriter) WriteHeader(status int) {
	if rw.status == 0 {
		rw.status = status
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(data []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(data)
	rw.size += n
	return n, err
}

// Flush sends buffered data to the client, for event streams
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *responseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}
