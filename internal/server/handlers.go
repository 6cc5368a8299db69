package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"paladin/internal/logging"
	"paladin/internal/security"
)

// ChatRequest is the POST /chat payload.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the POST /chat response. RawOutput is null when no
// command output exists.
type ChatResponse struct {
	Message   string  `json:"message"`
	Command   string  `json:"command"`
	RawOutput *string `json:"raw_output"`
}

// EmptyMessageError is returned for a blank chat message.
const EmptyMessageError = "[ERROR] Empty message received"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": ServiceName})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	log := logging.With("request_id", requestID)

	if ok, wait := s.limiter.Allow(); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		log.Warn("chat request throttled", "retry_after", wait)
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"detail": "rate limit exceeded"})
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusOK, ChatResponse{Message: EmptyMessageError})
		return
	}

	log.Info("chat request", "message_chars", len(message))

	result, err := s.runTurn(r.Context(), message)
	if err != nil {
		// Turn failures travel in the message field with status 200.
		text := security.Redact(err.Error())
		log.Error("chat turn failed", "error", text)
		writeJSON(w, http.StatusOK, ChatResponse{Message: "[ERROR] " + text})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Message:   result.Message,
		Command:   result.Command,
		RawOutput: &result.RawOutput,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
