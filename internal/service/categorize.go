package service

import (
	"context"
	"errors"

	"github.com/kjstillabower/tempplot/internal/loader"
	"github.com/kjstillabower/tempplot/internal/normalize"
	"github.com/kjstillabower/tempplot/internal/render"
	"github.com/kjstillabower/tempplot/internal/writer"
)

// ErrorCategory is a stable label for error classification in metrics and logs.
type ErrorCategory string

// Error category constants used as the result label on plotRunsTotal.
const (
	ErrorCategoryInput       ErrorCategory = "input"
	ErrorCategoryCSV         ErrorCategory = "csv"
	ErrorCategorySchema      ErrorCategory = "schema"
	ErrorCategoryEmpty       ErrorCategory = "empty"
	ErrorCategoryDate        ErrorCategory = "date"
	ErrorCategoryTemperature ErrorCategory = "temperature"
	ErrorCategoryRender      ErrorCategory = "render"
	ErrorCategoryOutput      ErrorCategory = "output"
	ErrorCategoryCanceled    ErrorCategory = "canceled"
	ErrorCategoryUnknown     ErrorCategory = "unknown"
)

// CategorizeError maps a pipeline error to a stable ErrorCategory.
func CategorizeError(err error) ErrorCategory {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorCategoryCanceled
	case errors.Is(err, loader.ErrInputNotFound), errors.Is(err, loader.ErrInputUnreadable):
		return ErrorCategoryInput
	case errors.Is(err, loader.ErrMalformedCSV):
		return ErrorCategoryCSV
	case errors.Is(err, loader.ErrMissingColumn):
		return ErrorCategorySchema
	case errors.Is(err, loader.ErrNoRows), errors.Is(err, render.ErrEmptySeries):
		return ErrorCategoryEmpty
	case errors.Is(err, normalize.ErrBadDate):
		return ErrorCategoryDate
	case errors.Is(err, normalize.ErrBadTemperature):
		return ErrorCategoryTemperature
	case errors.Is(err, writer.ErrOutputUnwritable):
		return ErrorCategoryOutput
	case errors.Is(err, render.ErrPlot), errors.Is(err, render.ErrFigureClosed):
		return ErrorCategoryRender
	}
	return ErrorCategoryUnknown
}
