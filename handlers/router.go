package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// NewRouter registers the recipe routes.
func NewRouter(h *Recipes) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/recipes", h.GetRecipes).Methods("GET")
	r.HandleFunc("/recipe", h.GetRecipe).Methods("GET")
	r.HandleFunc("/recipe", h.CreateRecipe).Methods("POST")
	r.HandleFunc("/update/recipe", h.UpdateRecipe).Methods("PUT")
	r.HandleFunc("/delete/recipe", h.DeleteRecipe).Methods("DELETE")
	r.HandleFunc("/healthz", Healthz).Methods("GET")

	return r
}

// WithCORS wraps next so browsers on allowedOrigins can call the API.
func WithCORS(next http.Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})

	return c.Handler(next)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// WithAccessLog tags every request with an id and logs it once served.
func WithAccessLog(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		log.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// NewHandler is the full middleware stack the server runs.
func NewHandler(h *Recipes, allowedOrigins []string, accessLog zerolog.Logger) http.Handler {
	return WithCORS(WithAccessLog(NewRouter(h), accessLog), allowedOrigins)
}
