package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tiffinbox/marketplace/internal/service/models/review"
)

func TestNextRating(t *testing.T) {
	assert.InDelta(t, 5.0, review.NextRating(0, 0, 5), 0.001)
	assert.InDelta(t, 4.5, review.NextRating(5, 1, 4), 0.001)
	assert.InDelta(t, 4.0, review.NextRating(4.25, 4, 3), 0.001)
}
