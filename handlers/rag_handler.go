package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spacebio/articles-api/services/rag"
	"github.com/spacebio/articles-api/utils"
	"go.uber.org/zap"
)

// AskRequest is the body of POST /api/rag/ask
type AskRequest struct {
	Question   string `json:"question" validate:"required"`
	SearchMode bool   `json:"searchMode"`
}

// FunFactResponse is the body of GET /api/rag/fun-fact
type FunFactResponse struct {
	FunFact string `json:"funFact"`
}

// AskService defines the pipeline operations the handler depends on
type AskService interface {
	Ask(ctx context.Context, question string, searchMode bool) (*rag.AnswerEnvelope, error)
	FunFact(ctx context.Context) string
}

// RagHandler handles question-answering HTTP requests
type RagHandler struct {
	service AskService
	logger  *zap.Logger
}

// NewRagHandler creates a new RagHandler
func NewRagHandler(service AskService, logger *zap.Logger) *RagHandler {
	return &RagHandler{
		service: service,
		logger:  logger,
	}
}

// HandleAsk handles POST /api/rag/ask.
// An empty question is rejected here; the pipeline never sees it.
func (h *RagHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse ask request body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err)
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		_ = utils.WriteBadRequest(w, "La pregunta es requerida en el cuerpo de la petición.", nil)
		return
	}

	envelope, err := h.service.Ask(r.Context(), req.Question, req.SearchMode)
	if err != nil {
		h.logger.Error("ask pipeline failed",
			zap.Bool("search_mode", req.SearchMode),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, envelope)
}

// HandleFunFact handles GET /api/rag/fun-fact. Always 200: generation
// failures fall back to a fixed fact inside the service.
func (h *RagHandler) HandleFunFact(w http.ResponseWriter, r *http.Request) {
	fact := h.service.FunFact(r.Context())
	_ = utils.WriteOK(w, FunFactResponse{FunFact: fact})
}
