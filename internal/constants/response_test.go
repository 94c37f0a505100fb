package constants

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsForQuery(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return ParsePaginationParams(c)
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
		wantSearch string
	}{
		{"defaults", "", 1, 20, 0, ""},
		{"explicit values", "page=3&limit=10", 3, 10, 20, ""},
		{"limit clamped to max", "limit=9999", 1, 100, 0, ""},
		{"zero page clamped", "page=0", 1, 20, 0, ""},
		{"negative values clamped", "page=-2&limit=-5", 1, 1, 0, ""},
		{"garbage falls back", "page=abc&limit=xyz", 1, 1, 0, ""},
		{"search passthrough", "search=acme", 1, 20, 0, "acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paramsForQuery(t, tt.query)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit ||
				got.Offset != tt.wantOffset || got.Search != tt.wantSearch {
				t.Errorf("ParsePaginationParams(%q) = %+v, want page=%d limit=%d offset=%d search=%q",
					tt.query, got, tt.wantPage, tt.wantLimit, tt.wantOffset, tt.wantSearch)
			}
		})
	}
}

func TestBuildResponses(t *testing.T) {
	list := BuildListResponse(42, 2, []string{"a"})
	if list[ResponseFieldTotal] != int64(42) || list[ResponseFieldPage] != 2 {
		t.Errorf("BuildListResponse = %+v", list)
	}

	errResp := BuildErrorResponse("boom", []string{"field is required"})
	if errResp[ResponseFieldMessage] != "boom" {
		t.Errorf("BuildErrorResponse message = %v", errResp[ResponseFieldMessage])
	}
	if _, ok := errResp[ResponseFieldDetails]; !ok {
		t.Error("BuildErrorResponse should carry details when provided")
	}

	noDetails := BuildErrorResponse("boom", nil)
	if _, ok := noDetails[ResponseFieldDetails]; ok {
		t.Error("BuildErrorResponse should omit details when nil")
	}
}
