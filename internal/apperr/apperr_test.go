package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCode(t *testing.T) {
	err := NewNotFoundError("models/food100.onnx")
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeParseError))
	assert.False(t, IsCode(nil, CodeNotFound))
}

func TestIsCode_WrappedError(t *testing.T) {
	err := fmt.Errorf("loading registry: %w", NewParseError("class_names.json", errors.New("bad token")))
	assert.True(t, IsCode(err, CodeParseError))
}

func TestFrom_KnownError(t *testing.T) {
	info := From(NewIndexRangeError(72, 50))
	assert.Equal(t, CodeIndexRange, info.Code)
	assert.Equal(t, http.StatusInternalServerError, info.HttpStatus)
	assert.Contains(t, info.Message, "72")
	assert.Contains(t, info.Message, "50")
}

func TestFrom_UnknownErrorMapsToUnexpected(t *testing.T) {
	info := From(errors.New("something odd"))
	assert.Equal(t, CodeUnexpected, info.Code)
	assert.Equal(t, http.StatusInternalServerError, info.HttpStatus)
}

func TestHttpMappings(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, NewNotFoundError("x").HttpStatus)
	assert.Equal(t, http.StatusServiceUnavailable, NewStructureMismatchError(errors.New("x")).HttpStatus)
	assert.Equal(t, http.StatusServiceUnavailable, NewNotOperationalError().HttpStatus)
	assert.Equal(t, http.StatusBadRequest, NewDecodeError(errors.New("x")).HttpStatus)
	assert.Equal(t, http.StatusBadRequest, NewNoInputError().HttpStatus)
}
