package controllers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/poofware/wayfinding-service/internal/dtos"
	"github.com/poofware/wayfinding-service/internal/utils"
)

var validate = validator.New()

// floatParam reads an optional float query parameter; absent means 0.
func floatParam(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s value %q", name, raw)
	}
	return v, nil
}

// requiredFloatParam is floatParam for parameters that must be present.
func requiredFloatParam(r *http.Request, name string) (float64, error) {
	if !r.URL.Query().Has(name) {
		return 0, fmt.Errorf("missing %s", name)
	}
	return floatParam(r, name)
}

// normalizeRoomQuery trims the query and enforces the length cap on what
// remains, so padding around a valid room ID is never rejected.
func normalizeRoomQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(q); n > utils.MaxRoomQueryLength {
		return "", fmt.Errorf("%w: %d characters, max %d", utils.ErrInvalidQuery, n, utils.MaxRoomQueryLength)
	}
	return q, nil
}

func validateUnitPoint(q dtos.NearestEntranceQuery) error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidCoordinate, err)
	}
	return nil
}
