package errors

import "net/http"

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeInvalidVersion       ErrorCode = 104
	ErrCodeVersionMismatch      ErrorCode = 105
	ErrCodeInvalidRequest       ErrorCode = 106

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeInsufficientData      ErrorCode = 203
	ErrCodeWriteFailed           ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeUnknownParameter       ErrorCode = 302

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701
	ErrCodeStreamFailed          ErrorCode = 702

	// Transport errors (900-999)
	ErrCodeServerFailed ErrorCode = 900
)

// HTTPStatus maps an error code to the status the API server responds with.
func (c ErrorCode) HTTPStatus() int {
	switch {
	case c >= 100 && c < 200:
		return http.StatusBadRequest
	case c == ErrCodeIndicatorNotFound, c == ErrCodeDataNotFound:
		return http.StatusNotFound
	case c == ErrCodeUnknownParameter:
		return http.StatusBadRequest
	case c >= 700 && c < 800:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
