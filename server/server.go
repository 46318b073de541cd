// Package server exposes scene generation over HTTP so other runtimes
// can ask for scenes without linking the searcher.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"drama/agent"
	"drama/oracle"
	"drama/script"

	"github.com/rs/zerolog/log"
)

type GenerationServer struct {
	generator agent.Generator
	addr      string
}

func New(generator agent.Generator, addr string) *GenerationServer {
	if generator == nil {
		panic("Must provide a scene generator")
	}
	if addr == "" {
		addr = ":8080"
	}
	return &GenerationServer{generator: generator, addr: addr}
}

type generateRequest struct {
	Script  script.Script   `json:"script"`
	GameLog *script.GameLog `json:"gamelog"`
}

type generateResponse struct {
	Scene script.Scene `json:"scene"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the server's routes.
func (s *GenerationServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until the listener fails.
func (s *GenerationServer) Start() error {
	log.Info().Msgf("server: listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *GenerationServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *GenerationServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request: "+err.Error())
		return
	}
	if len(req.Script) == 0 {
		writeError(w, http.StatusBadRequest, "script is required")
		return
	}
	glog := req.GameLog
	if glog == nil {
		glog = script.NewGameLog()
	}

	scene, err := s.generator.GenerateScene(r.Context(), req.Script, glog)
	if err != nil {
		log.Warn().Msgf("server: generation failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, oracle.ErrUnavailable) {
			status = http.StatusBadGateway
		}
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(generateResponse{Scene: scene})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}
