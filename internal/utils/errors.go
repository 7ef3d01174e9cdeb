package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer. Controllers map them
// to HTTP responses with errors.Is.
var (
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrFloorNotFound    = errors.New("floor_not_found")
	ErrNoEntrances      = errors.New("no_entrances")
	ErrUnknownBuilding  = errors.New("unknown_building")
	ErrNoFloorsLoaded   = errors.New("no_floors_loaded")
	ErrNoBuildingLoaded = errors.New("no_building_loaded")
	ErrNoBuildings      = errors.New("no_buildings_available")
	ErrInvalidQuery     = errors.New("invalid_query")

	// Extraction / catalog ingestion
	ErrExtractionFailed  = errors.New("extraction_failed")
	ErrInvalidCoordinate = errors.New("invalid_coordinate")
)

// AppError carries a status, public code and message from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
