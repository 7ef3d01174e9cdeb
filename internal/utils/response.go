package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	ErrCodeInvalidPayload   = "invalid_payload"
	ErrCodeValidation       = "validation_error"
	ErrCodeInternal         = "internal_server_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeRoomNotFound     = "room_not_found"
	ErrCodeFloorNotFound    = "floor_not_found"
	ErrCodeNoEntrances      = "no_entrances"
	ErrCodeUnknownBuilding  = "unknown_building"
	ErrCodeLoadFailed       = "load_failed"
	ErrCodeNoBuildingLoaded = "no_building_loaded"
)

// ErrorResponse has an optional Details field for extra context
// (e.g. the load report of a failed building selection).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// RespondErrorWithCode builds a JSON error response with a standard
// code and message. The optional `details` is included if non-nil.
func RespondErrorWithCode(
	w http.ResponseWriter,
	status int,
	errorCode string,
	publicMessage string,
	details any,
	devErrs ...error,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errBody := ErrorResponse{
		Code:    errorCode,
		Message: publicMessage,
	}
	if details != nil {
		errBody.Details = details
	}
	_ = json.NewEncoder(w).Encode(errBody)

	fields := logrus.Fields{"status": status, "code": errorCode}
	if len(devErrs) > 0 && devErrs[0] != nil {
		fields["error"] = devErrs[0].Error()
	}
	// 4xx are caller mistakes, not service faults
	if status >= http.StatusInternalServerError {
		Logger.WithFields(fields).Error(publicMessage)
	} else {
		Logger.WithFields(fields).Debug(publicMessage)
	}
}

// RespondWithJSON for successful cases
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
