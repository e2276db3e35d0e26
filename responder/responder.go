package responder

import (
	"log/slog"
	"net/http"
)

const (
	jsonContentType    = "application/json"
	problemContentType = "application/problem+json"
	statusDocBaseURL   = "https://httpstatuses.io"
)

// ResponderOption follows the functional options pattern used by NewResponder
// to configure optional collaborators.
type ResponderOption func(*Responder)

type statusMeta struct {
	typeURI  string
	title    string
	logLevel slog.Level
	logMsg   string
}

// StatusMetadata allows callers to customise how particular HTTP status codes
// are logged and represented in problem payloads.
type StatusMetadata struct {
	TypeURI  string
	Title    string
	LogLevel slog.Level
	LogMsg   string
}

// Responder writes the JSON bodies produced by operation handlers and the
// error envelopes emitted when they fail. Every registered route shares one
// instance so encoding and logging stay uniform.
type Responder struct {
	log            *slog.Logger
	statusMetadata map[int]statusMeta
}

// NewResponder constructs a Responder with default status metadata and the
// global slog logger.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		log:            slog.Default(),
		statusMetadata: defaultStatusMetadata(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithLogger injects a custom slog logger for error reporting.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithStatusMetadata overrides the problem metadata used for a specific HTTP
// status code.
func WithStatusMetadata(status int, meta StatusMetadata) ResponderOption {
	return func(r *Responder) {
		if r.statusMetadata == nil {
			r.statusMetadata = make(map[int]statusMeta)
		}
		r.statusMetadata[status] = normalizeStatusMeta(status, statusMeta{
			typeURI:  meta.TypeURI,
			title:    meta.Title,
			logLevel: meta.LogLevel,
			logMsg:   meta.LogMsg,
		})
	}
}

// Logger returns the slog logger used internally by the responder.
func (r *Responder) Logger() *slog.Logger {
	return r.logger()
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

func defaultStatusMetadata() map[int]statusMeta {
	return map[int]statusMeta{
		http.StatusInternalServerError: {title: http.StatusText(http.StatusInternalServerError), logLevel: slog.LevelError, logMsg: "Internal Server Error"},
		http.StatusBadRequest:          {title: http.StatusText(http.StatusBadRequest), logLevel: slog.LevelWarn, logMsg: "Bad Request"},
		http.StatusNotFound:            {title: http.StatusText(http.StatusNotFound), logLevel: slog.LevelInfo, logMsg: "Not Found"},
		http.StatusUnprocessableEntity: {title: http.StatusText(http.StatusUnprocessableEntity), logLevel: slog.LevelWarn, logMsg: "Unprocessable Entity"},
	}
}
