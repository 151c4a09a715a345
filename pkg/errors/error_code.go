package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidCapital       ErrorCode = 100
	ErrCodeEmptySeries          ErrorCode = 101
	ErrCodeSeriesTooShort       ErrorCode = 102
	ErrCodeInvalidDateRange     ErrorCode = 103
	ErrCodeInvalidConfiguration ErrorCode = 104
	ErrCodeInvalidRequest       ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeStrategyNotFound ErrorCode = 200
	ErrCodeDataNotFound     ErrorCode = 201
	ErrCodeResultNotFound   ErrorCode = 202
	ErrCodeQueryFailed      ErrorCode = 203

	// Store errors (300-399)
	ErrCodeStoreUnavailable ErrorCode = 300
	ErrCodeWriteFailed      ErrorCode = 301

	// Backtest errors (600-699)
	ErrCodeBacktestFailed ErrorCode = 600
)
