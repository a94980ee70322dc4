package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gb_market/pkg/logx"
	"gb_market/pkg/middlewarex"
)

type RouterOptions struct {
	Logger            *slog.Logger
	LogFieldMaxLength int
}

func (s Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger(opts.Logger),
		middlewarex.Recovery,
	)

	masker := logx.NewSensitiveDataMasker()

	s.RegisterRoutes(r,
		middlewarex.RequestLogging(masker, opts.LogFieldMaxLength),
		middlewarex.ResponseLogging(masker, opts.LogFieldMaxLength),
	)

	return r
}

// RegisterRoutes mounts the API. bodyLogging wraps every endpoint except the
// stream, whose connection is hijacked.
func (s Server) RegisterRoutes(r chi.Router, bodyLogging ...func(http.Handler) http.Handler) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/widgets", func(r chi.Router) {
			r.Get("/{id}/stream", handler(s.getV1WidgetStream))

			r.Group(func(r chi.Router) {
				r.Use(bodyLogging...)

				r.Post("/", handler(s.postV1Widget))
				r.Get("/", handler(s.getV1Widgets))
				r.Get("/{id}", handler(s.getV1Widget))
				r.Delete("/{id}", handler(s.deleteV1Widget))
				r.Post("/{id}/pause", handler(s.postV1WidgetPause))
				r.Post("/{id}/resume", handler(s.postV1WidgetResume))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			replyError(r.Context(), w, err)
		}
	}
}
