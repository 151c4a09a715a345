package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidCapital, "initial capital must be positive")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidCapital, err.Code)
	suite.Equal("initial capital must be positive", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeSeriesTooShort, "price series has %d bars", 5)
	suite.NotNil(err)
	suite.Equal(ErrCodeSeriesTooShort, err.Code)
	suite.Equal("price series has 5 bars", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "failed to execute query", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeQueryFailed, err.Code)
	suite.Equal("failed to execute query", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataNotFound, cause, "no bars found for symbol: %s", "NIFTY50")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("no bars found for symbol: NIFTY50", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidCapital, "initial capital must be positive")
	suite.Equal("[100] initial capital must be positive", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStrategyNotFound, "strategy not found", cause)
	suite.Equal("[200] strategy not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "failed to execute query", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidCapital, "initial capital must be positive")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeEmptySeries, "price series is empty")
	suite.Equal(ErrCodeEmptySeries, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeQueryFailed, "failed to execute query")
	err := Wrap(ErrCodeBacktestFailed, "backtest failed", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeBacktestFailed, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromStandardError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidCapital, "initial capital must be positive")
	suite.True(HasCode(err, ErrCodeInvalidCapital))
	suite.False(HasCode(err, ErrCodeDataNotFound))
}

func (suite *ErrorTestSuite) TestIsError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "failed to execute query", cause)
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestAsError() {
	err := New(ErrCodeInvalidCapital, "initial capital must be positive")
	var typed *Error
	suite.True(As(err, &typed))
	suite.Equal(ErrCodeInvalidCapital, typed.Code)
}

func (suite *ErrorTestSuite) TestIsNotFound() {
	suite.True(IsNotFound(New(ErrCodeStrategyNotFound, "strategy not found")))
	suite.True(IsNotFound(New(ErrCodeDataNotFound, "data not found")))
	suite.True(IsNotFound(New(ErrCodeResultNotFound, "result not found")))
	suite.False(IsNotFound(New(ErrCodeQueryFailed, "failed to execute query")))
	suite.False(IsNotFound(errors.New("standard error")))
}

func (suite *ErrorTestSuite) TestIsInvalidInput() {
	suite.True(IsInvalidInput(New(ErrCodeInvalidCapital, "initial capital must be positive")))
	suite.True(IsInvalidInput(New(ErrCodeEmptySeries, "price series is empty")))
	suite.True(IsInvalidInput(New(ErrCodeInvalidDateRange, "start after end")))
	suite.False(IsInvalidInput(New(ErrCodeStrategyNotFound, "strategy not found")))
	suite.False(IsInvalidInput(errors.New("standard error")))
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	// Verify some key error codes have expected values
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidCapital)
	suite.Equal(ErrorCode(200), ErrCodeStrategyNotFound)
	suite.Equal(ErrorCode(600), ErrCodeBacktestFailed)
}
