package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Doneddie/kampala-closet/entities"
	"github.com/Doneddie/kampala-closet/models"
)

func TestParseFilterCriteriaDefaults(t *testing.T) {
	criteria, err := parseFilterCriteria(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if criteria.Search != "" {
		t.Fatalf("expected empty search term, got %q", criteria.Search)
	}
	if criteria.Category != entities.CategoryAll {
		t.Fatalf("expected %q category, got %q", entities.CategoryAll, criteria.Category)
	}
	if !criteria.PriceMin.IsZero() {
		t.Fatalf("expected zero min price, got %s", criteria.PriceMin)
	}
	if !criteria.PriceMax.Equal(defaultPriceCap) {
		t.Fatalf("expected default price cap, got %s", criteria.PriceMax)
	}
}

func TestParseFilterCriteriaValues(t *testing.T) {
	q := url.Values{}
	q.Set("q", "dress")
	q.Set("category", "dresses")
	q.Set("min_price", "10")
	q.Set("max_price", "99.99")
	criteria, err := parseFilterCriteria(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if criteria.Search != "dress" || criteria.Category != "dresses" {
		t.Fatalf("unexpected criteria: %+v", criteria)
	}
	if criteria.PriceMin.String() != "10" || criteria.PriceMax.String() != "99.99" {
		t.Fatalf("unexpected price range: %s..%s", criteria.PriceMin, criteria.PriceMax)
	}
}

func TestParseFilterCriteriaInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"min not a number", "min_price", "cheap"},
		{"max not a number", "max_price", "expensive"},
		{"negative min", "min_price", "-5"},
		{"negative max", "max_price", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			q.Set(tt.key, tt.value)
			if _, err := parseFilterCriteria(q); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{models.ErrServerError, 500},
		{models.ErrUnautorized, 401},
		{models.ErrBadRequest, 400},
		{models.ErrNotFoundError, 404},
		{models.ErrNotAllowed, 406},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		WriteErrorResponse(w, tt.err)
		if w.Code != tt.code {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.code, w.Code)
		}
	}
}
