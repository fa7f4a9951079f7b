package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/config"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/middleware"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/model"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/tonescript"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewHandlers creates handlers serving tones from cat.
func NewHandlers(cfg *config.Config, cat *catalog.Catalog, logger *zap.Logger) *Handlers {
	return &Handlers{cfg: cfg, catalog: cat, logger: logger}
}

// Router returns the service's HTTP routes.
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(h.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, headerSampleRate, headerFrameMs},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/presets", h.ListPresets)
		r.Post("/parse", h.ParseScript)
		r.Route("/tones", func(r chi.Router) {
			r.Post("/", h.CreateTone)
			r.Get("/", h.ListTones)
			r.Route("/{toneId}", func(r chi.Router) {
				r.Get("/", h.GetTone)
				r.Delete("/", h.DeleteTone)
				r.Get("/sample", h.GetSample)
				r.Get("/audio", h.GetAudio)
			})
		})
	})

	return r
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// writeJSON encodes v before committing status, so a value that cannot be
// encoded becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"encode response failed"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// syntaxErrorBody describes err for clients, naming the failing rule when
// err is a *tonescript.SyntaxError.
func syntaxErrorBody(err error) *model.ErrorResponse {
	body := &model.ErrorResponse{Error: err.Error()}
	var se *tonescript.SyntaxError
	if errors.As(err, &se) {
		body.Rule = se.Rule.String()
		body.Term = se.Term
	}
	return body
}
