package server

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/Dteebaba/Survey-Agent/config"
	"github.com/Dteebaba/Survey-Agent/translator"
)

// ============================================================================
// SERVER — Web UI over the upload → profile → plan → execute → export flow
// ============================================================================
// The server keeps uploaded datasets in an in-memory session store and renders
// server-side HTML. The translator is injected so tests can stub the AI call.
// ============================================================================

// Server wires the HTTP handlers to the session store and translator.
type Server struct {
	cfg        config.Config
	translator translator.Translator
	sessions   *SessionStore
}

// New creates a Server. A nil translator disables the plan and summary
// endpoints (uploads and profiling still work).
func New(cfg config.Config, tr translator.Translator) *Server {
	return &Server{
		cfg:        cfg,
		translator: tr,
		sessions:   NewSessionStore(),
	}
}

// Handler returns the routed handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/session", s.handleSession)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/download", s.handleDownload)
	mux.HandleFunc("/healthz", s.handleHealth)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return corsHandler.Handler(loggingMiddleware(mux))
}
