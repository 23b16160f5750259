package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/spacebio/articles-api/models"
	"github.com/spacebio/articles-api/utils"
	"go.uber.org/zap"
)

// ArticleService defines the article operations the handler depends on
type ArticleService interface {
	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
}

// ArticleHandler handles article CRUD HTTP requests
type ArticleHandler struct {
	service ArticleService
	logger  *zap.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(service ArticleService, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /api/articles
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list articles", zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, articles)
}

// HandleGet handles GET /api/articles/{id}
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = utils.WriteBadRequest(w, "article id must be an integer", nil)
		return
	}

	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, article)
}
