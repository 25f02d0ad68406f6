package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, DefaultPerPage, 0},
		{"explicit", "page=3&per_page=5", 3, 5, 10},
		{"clamped", "page=2&per_page=500", 2, MaxPerPage, MaxPerPage},
		{"garbage", "page=abc&per_page=-4", 1, DefaultPerPage, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			p := PageFromQuery(values)
			assert.Equal(t, tt.page, p.CurrentPage())
			assert.Equal(t, tt.limit, p.Limit())
			assert.Equal(t, tt.offset, p.Offset())
		})
	}
}
