package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/acai-travel/global-time-agent/internal/chat/model"
	"github.com/acai-travel/global-time-agent/internal/worldtime"
	"github.com/gorilla/mux"
)

type Assistant interface {
	Reply(ctx context.Context, conv *model.Conversation) (string, error)
}

type Resolver interface {
	Resolve(ctx context.Context, location string) worldtime.Result
}

// AgentCard describes the agent to HTTP clients.
type AgentCard struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Model       string   `json:"model,omitempty"`
	Tools       []string `json:"tools"`
}

type Server struct {
	assist   Assistant
	resolver Resolver
	card     AgentCard
}

func NewServer(assist Assistant, resolver Resolver, card AgentCard) *Server {
	return &Server{assist: assist, resolver: resolver, card: card}
}

// Register mounts the API routes on r.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/v1/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/v1/tools/get_current_time", s.handleCurrentTime).Methods(http.MethodPost)
	r.HandleFunc("/v1/agent", s.handleAgent).Methods(http.MethodGet)
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	conv := model.NewConversation(model.Message{Role: model.RoleUser, Content: req.Message})

	reply, err := s.assist.Reply(r.Context(), conv)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to generate reply", "conversation_id", conv.ID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to generate reply")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{ConversationID: conv.ID.String(), Reply: reply})
}

type CurrentTimeRequest struct {
	Location string `json:"location"`
}

// handleCurrentTime answers 200 for every resolved outcome; the status field
// of the body tells success from failure.
func (s *Server) handleCurrentTime(w http.ResponseWriter, r *http.Request) {
	var req CurrentTimeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.resolver.Resolve(r.Context(), req.Location))
}

func (s *Server) handleAgent(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.card)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
