package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormWindowKey(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)

	assert.Equal(t, "ratelimit:public-form:203.0.113.7:1741598100", formWindowKey("203.0.113.7", start))
	assert.NotEqual(t, formWindowKey("203.0.113.7", start), formWindowKey("203.0.113.7", start.Add(formLimitWindow)))
	assert.NotEqual(t, formWindowKey("203.0.113.7", start), formWindowKey("203.0.113.8", start))
}

func TestRemainingSubmissions(t *testing.T) {
	tests := []struct {
		name      string
		allowance int64
		count     int64
		want      int
	}{
		{"first submission", 6, 1, 5},
		{"last allowed", 6, 6, 0},
		{"over the limit", 6, 9, 0},
		{"zero allowance", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remainingSubmissions(tt.allowance, tt.count))
		})
	}
}

func TestNewFormLimiter_Limit(t *testing.T) {
	assert.Equal(t, 13, NewFormLimiter(nil, 10, 3).Limit())
}
