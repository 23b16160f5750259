package handlers

import (
	"net/http"

	"github.com/spacebio/articles-api/services"
	"github.com/spacebio/articles-api/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps a service-layer error onto an HTTP response.
// Provider failures surface as a generic server-side message; the detail
// stays in the logs.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	switch {
	case services.IsNotFoundError(err):
		_ = utils.WriteNotFound(w, "Artículo no encontrado")
	case services.IsValidationError(err):
		_ = utils.WriteBadRequest(w, err.Error(), nil)
	case services.IsExternalError(err):
		logger.Error("provider failure", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "El servicio de generación no está disponible en este momento.")
	default:
		logger.Error("unexpected service error", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
	}
}

// HandleValidationError writes a 400 with per-field details
func HandleValidationError(w http.ResponseWriter, err error) {
	_ = utils.WriteBadRequest(w, err.Error(), utils.GetValidationFields(err))
}
