package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"go.uber.org/zap"
)

type Handler struct {
	Movie       *MovieHandler
	Hall        *HallHandler
	Customer    *CustomerHandler
	Screening   *ScreeningHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:       NewMovieHandler(service.Movie, log),
		Hall:        NewHallHandler(service.Hall, log),
		Customer:    NewCustomerHandler(service.Customer, service.Reservation, log),
		Screening:   NewScreeningHandler(service.Screening, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func decodeQuery(r *http.Request, dst any) error {
	return queryDecoder.Decode(dst, r.URL.Query())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// respondList writes items as-is, or one page of them when ?page= is set.
func respondList[T any](w http.ResponseWriter, r *http.Request, message string, items []T) {
	var page request.PaginatedRequest
	if err := decodeQuery(r, &page); err != nil {
		utils.ResponseBadRequest(w, "Invalid query parameters", err.Error())
		return
	}
	if validationErrors := utils.ValidateStruct(page); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if !page.Enabled() {
		utils.ResponseSuccess(w, message, items)
		return
	}
	utils.ResponseSuccess(w, message, response.Paginate(items, page.Page, page.Limit()))
}

// handleServiceError maps the error kind to a status code.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var (
		validationErr *apperror.ValidationError
		conflictErr   *apperror.HallConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, apperror.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, apperror.ErrInvalidInterval):
		log.Warn(operation+" failed - invalid interval", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.As(err, &conflictErr):
		log.Warn(operation+" failed - hall conflict", zap.Error(err))
		details := map[string]string{"hall_id": conflictErr.HallID.String()}
		if conflictErr.ScreeningID != uuid.Nil {
			details["screening_id"] = conflictErr.ScreeningID.String()
		}
		utils.ResponseConflict(w, err.Error(), details)

	case errors.Is(err, apperror.ErrInUse):
		log.Warn(operation+" failed - in use", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, apperror.ErrStorageUnavailable):
		log.Error(operation+" failed - storage unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Storage unavailable, try again later")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
