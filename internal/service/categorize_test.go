package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kjstillabower/tempplot/internal/loader"
	"github.com/kjstillabower/tempplot/internal/normalize"
	"github.com/kjstillabower/tempplot/internal/render"
	"github.com/kjstillabower/tempplot/internal/writer"
)

// TestCategorizeError verifies that CategorizeError maps sentinel and wrapped
// pipeline errors to the correct ErrorCategory.
func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, ""},
		{"canceled", context.Canceled, ErrorCategoryCanceled},
		{"not found", loader.ErrInputNotFound, ErrorCategoryInput},
		{"unreadable", loader.ErrInputUnreadable, ErrorCategoryInput},
		{"malformed", loader.ErrMalformedCSV, ErrorCategoryCSV},
		{"missing column", loader.ErrMissingColumn, ErrorCategorySchema},
		{"no rows", loader.ErrNoRows, ErrorCategoryEmpty},
		{"empty series", render.ErrEmptySeries, ErrorCategoryEmpty},
		{"wrapped bad date", fmt.Errorf("normalize x: row 2: %w", normalize.ErrBadDate), ErrorCategoryDate},
		{"bad temperature", normalize.ErrBadTemperature, ErrorCategoryTemperature},
		{"plot", render.ErrPlot, ErrorCategoryRender},
		{"closed figure", render.ErrFigureClosed, ErrorCategoryRender},
		{"wrapped output", fmt.Errorf("write out.png: %w", writer.ErrOutputUnwritable), ErrorCategoryOutput},
		{"unknown", errors.New("something else"), ErrorCategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeError(tt.err); got != tt.want {
				t.Errorf("CategorizeError() = %v, want %v", got, tt.want)
			}
		})
	}
}
