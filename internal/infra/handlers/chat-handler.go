package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chat-connector/internal/domain/dto"
	Iservices "chat-connector/internal/domain/interfaces/services"
	"chat-connector/internal/infra/logger"
)

type ChatHandlers struct {
	Logger          *logger.Logger
	DispatchService Iservices.IDispatchService
}

func NewChatHandlers(log *logger.Logger, dispatchService Iservices.IDispatchService) *ChatHandlers {
	return &ChatHandlers{Logger: log, DispatchService: dispatchService}
}

// Chat serves /api/chat for both GET (query parameters) and POST (JSON
// body). Echoes are acknowledged with 200 and an ignored flag; a missing
// message is a 400; anything unexpected is caught and mapped to a generic
// 500 so internals never leak to the client.
func (th *ChatHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			th.Logger.Error(fmt.Sprintf("Recovered from panic in chat handler: %v", rec))
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		}
	}()

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "method not allowed"})
		return
	}

	req, err := parseChatRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}
	if req.UserID == "" {
		req.UserID = "anon"
	}

	if req.Init || req.Welcome {
		result, derr := th.DispatchService.Welcome(r.Context(), req.UserID, req.Persona)
		if derr != nil {
			th.Logger.Error(fmt.Sprintf("Welcome failed for %s: %v", req.UserID, derr))
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, dto.ChatResponse{
			Reply:  result.Text,
			Text:   result.Text,
			Meta:   result.Meta,
			TookMs: time.Since(start).Milliseconds(),
		})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "message (or q) is required"})
		return
	}

	result, derr := th.DispatchService.Respond(r.Context(), req.UserID, req.Message, req.Persona)
	if derr != nil {
		th.Logger.Error(fmt.Sprintf("Dispatch failed for %s: %v", req.UserID, derr))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}

	if result.Ignored {
		writeJSON(w, http.StatusOK, dto.IgnoredResponse{Ignored: true, Reason: "echo"})
		return
	}

	writeJSON(w, http.StatusOK, dto.ChatResponse{
		Reply:  result.Text,
		Text:   result.Text,
		Meta:   result.Meta,
		TookMs: time.Since(start).Milliseconds(),
	})
}

func parseChatRequest(r *http.Request) (dto.ChatRequest, error) {
	var req dto.ChatRequest

	if r.Method == http.MethodPost {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
		req.Init = req.Init || req.Welcome
		return req, nil
	}

	query := r.URL.Query()
	req.UserID = query.Get("userId")
	if req.UserID == "" {
		req.UserID = query.Get("user")
	}
	req.Message = query.Get("message")
	if req.Message == "" {
		req.Message = query.Get("q")
	}
	req.Persona = query.Get("persona")
	req.Init = isTruthy(query.Get("init")) || isTruthy(query.Get("welcome"))
	return req, nil
}

func isTruthy(v string) bool {
	return v == "1" || v == "true"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
