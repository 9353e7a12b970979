package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/api-sage/money-transfer-service/src/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps by error kind and sentinel, never by message text.
func statusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrorKindInvalidAmount, domain.ErrorKindCurrencyMismatch:
		return http.StatusBadRequest
	case domain.ErrorKindAccountNotFound:
		return http.StatusNotFound
	case domain.ErrorKindStoreFailure:
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, commons.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respond writes the service result, logging client errors at WARN and
// server errors at ERROR.
func respond[T any](w http.ResponseWriter, r *http.Request, start time.Time, successStatus int, response commons.Response[T], err error) {
	status := successStatus
	if err != nil {
		status = statusForError(err)
		if status >= http.StatusInternalServerError {
			logError(r, err, logger.Fields{"message": response.Message})
		} else {
			logger.Warn("http request rejected", logger.Fields{
				"method":  r.Method,
				"path":    r.URL.Path,
				"status":  status,
				"message": response.Message,
				"reason":  err.Error(),
			})
		}
	}

	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func decodeBody[T any, R any](w http.ResponseWriter, r *http.Request, start time.Time, dst *T) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[R]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return false
	}
	logRequest(r, *dst)
	return true
}

func pathID[R any](w http.ResponseWriter, r *http.Request, start time.Time) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		response := commons.ErrorResponse[R]("validation failed", fmt.Sprintf("id must be a positive integer, got %q", r.PathValue("id")))
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return 0, false
	}
	return id, true
}
