package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeStructureMismatch Code = "STRUCTURE_MISMATCH"
	CodeParseError        Code = "PARSE_ERROR"
	CodeDecodeError       Code = "DECODE_ERROR"
	CodeIndexRange        Code = "INDEX_RANGE"
	CodeNoInput           Code = "NO_INPUT"
	CodeNotOperational    Code = "NOT_OPERATIONAL"
	CodeUnexpected        Code = "UNEXPECTED"
)

type Code string

// ErrorInfo carries the taxonomy code, an HTTP mapping and a
// user-presentable message for one failed operation.
type ErrorInfo struct {
	HttpStatus int    `json:"-"`
	Code       Code   `json:"code"`
	Message    string `json:"message"`
}

func (e ErrorInfo) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func IsCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	info := ErrorInfo{}
	if errors.As(err, &info) {
		return info.Code == code
	}
	return false
}

// From maps an arbitrary error to its ErrorInfo, falling back to UNEXPECTED.
func From(err error) ErrorInfo {
	info := ErrorInfo{}
	if errors.As(err, &info) {
		return info
	}
	return NewUnexpectedError(err)
}

func NewNotFoundError(path string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusServiceUnavailable, Code: CodeNotFound, Message: fmt.Sprintf("required file not found: %s", path)}
}

func NewStructureMismatchError(err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusServiceUnavailable, Code: CodeStructureMismatch, Message: fmt.Sprintf("model weights do not match the declared graph: %v", err)}
}

func NewParseError(path string, err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusServiceUnavailable, Code: CodeParseError, Message: fmt.Sprintf("malformed file %s: %v", path, err)}
}

func NewDecodeError(err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusBadRequest, Code: CodeDecodeError, Message: fmt.Sprintf("could not decode image: %v", err)}
}

func NewIndexRangeError(index, count int) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusInternalServerError, Code: CodeIndexRange, Message: fmt.Sprintf("prediction index %d out of range for %d class names", index, count)}
}

func NewNoInputError() ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusBadRequest, Code: CodeNoInput, Message: "please upload an image or capture a photo to get started"}
}

func NewNotOperationalError() ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusServiceUnavailable, Code: CodeNotOperational, Message: "model or class names failed to load, prediction is unavailable"}
}

func NewUnexpectedError(err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusInternalServerError, Code: CodeUnexpected, Message: err.Error()}
}
