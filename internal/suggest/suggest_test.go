package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	modes := []string{"free", "toggle"}
	assert.Equal(t, "toggle", Closest("togle", modes))
	assert.Equal(t, "free", Closest("FRE", modes))
	assert.Equal(t, "", Closest("accordion-everything", modes))
	assert.Equal(t, "", Closest("x", nil))
}

func TestHint(t *testing.T) {
	assert.Equal(t, " (did you mean toggle?)", Hint("toggel", []string{"free", "toggle"}))
	assert.Equal(t, "", Hint("zzzzzzzz", []string{"free"}))
}
