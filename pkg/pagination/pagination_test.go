package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Limit: DefaultLimit, Offset: 0}},
		{"explicit", "?limit=10&offset=30", Params{Limit: 10, Offset: 30}},
		{"clamped limit", "?limit=1000", Params{Limit: MaxLimit, Offset: 0}},
		{"negative offset", "?offset=-4", Params{Limit: DefaultLimit, Offset: 0}},
		{"garbage", "?limit=abc&offset=xyz", Params{Limit: DefaultLimit, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/doctors"+tt.query, nil)
			assert.Equal(t, tt.want, FromRequest(req))
		})
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	assert.True(t, NewResponse([]int{1}, 45, Params{Limit: 20, Offset: 20}).HasMore)
	assert.False(t, NewResponse([]int{1}, 40, Params{Limit: 20, Offset: 20}).HasMore)
}
