package routes

import (
	"encoding/json"
	"net/http"

	"chat-connector/internal/infra/handlers"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux         *mux.Router
	ChatHandler *handlers.ChatHandlers
}

func NewRoutes(mux *mux.Router, chatHandler *handlers.ChatHandlers) *Routes {
	return &Routes{mux, chatHandler}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/api/chat", r.ChatHandler.Chat).
		Methods(http.MethodGet, http.MethodPost, http.MethodOptions)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
