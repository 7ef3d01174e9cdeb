package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/wayfinding-service/internal/dtos"
	"github.com/poofware/wayfinding-service/internal/utils"
)

func TestNormalizeRoomQuery(t *testing.T) {
	q, err := normalizeRoomQuery("   PH-D1.01\t ")
	require.NoError(t, err)
	assert.Equal(t, "PH-D1.01", q)

	q, err = normalizeRoomQuery(strings.Repeat(" ", 30) + strings.Repeat("A", utils.MaxRoomQueryLength) + " ")
	require.NoError(t, err)
	assert.Len(t, q, utils.MaxRoomQueryLength)

	_, err = normalizeRoomQuery(strings.Repeat("A", utils.MaxRoomQueryLength+1))
	assert.ErrorIs(t, err, utils.ErrInvalidQuery)

	// the cap counts characters, not bytes
	q, err = normalizeRoomQuery(strings.Repeat("Ø", utils.MaxRoomQueryLength))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("Ø", utils.MaxRoomQueryLength), q)
}

func TestValidateUnitPoint(t *testing.T) {
	assert.NoError(t, validateUnitPoint(dtos.NearestEntranceQuery{X: 0, Y: 1}))
	assert.NoError(t, validateUnitPoint(dtos.NearestEntranceQuery{X: 0.5, Y: 0.25}))
	assert.ErrorIs(t, validateUnitPoint(dtos.NearestEntranceQuery{X: 1.5, Y: 0.5}), utils.ErrInvalidCoordinate)
	assert.ErrorIs(t, validateUnitPoint(dtos.NearestEntranceQuery{X: 0.5, Y: -0.1}), utils.ErrInvalidCoordinate)
}

func TestFloatParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?a=1.5&b=&c=NaN&d=wide", nil)

	v, err := floatParam(r, "a")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = floatParam(r, "b")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = floatParam(r, "c")
	assert.Error(t, err)
	_, err = floatParam(r, "d")
	assert.Error(t, err)

	_, err = requiredFloatParam(r, "missing")
	assert.Error(t, err)
}
