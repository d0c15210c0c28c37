package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"greenmart/internal/usecase"
	"greenmart/pkg/middleware"
	"greenmart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type stockErrorDetail struct {
	ProductID int64 `json:"product_id"`
	Available int   `json:"available"`
}

// writeServiceError maps service errors to HTTP responses. Anything it does
// not recognise is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validationErr *usecase.ValidationError
		stockErr      *usecase.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.As(err, &stockErr):
		log.Info(operation+" failed - insufficient stock", zap.Error(err))
		utils.ResponseBadRequest(w, stockErr.Error(), stockErrorDetail{
			ProductID: stockErr.ProductID,
			Available: stockErr.Available,
		})

	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, notFoundMessage(err))

	case errors.Is(err, usecase.ErrDuplicateEmail):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, "Email already registered", nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, usecase.ErrAccountDisabled):
		utils.ResponseForbidden(w, "Account is disabled")

	case errors.Is(err, middleware.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Not authenticated")

	case errors.Is(err, middleware.ErrForbidden):
		utils.ResponseForbidden(w, "Insufficient permissions")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func notFoundMessage(err error) string {
	var productErr *usecase.ProductNotFoundError
	if errors.As(err, &productErr) {
		return productErr.Error()
	}
	return "Resource not found"
}

// decodeBody reads a JSON body into dst and answers 400 itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// pathID reads the {id} URL parameter and answers 400 itself when it is not
// a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ID", nil)
		return 0, false
	}
	return id, true
}
