package result_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/dogs/internal/domain/result"
)

func TestMap(t *testing.T) {
	length := func(s string) int { return len(s) }

	t.Run("success payload is converted", func(t *testing.T) {
		got := result.Map(result.Success("four"), length)
		assert.Equal(t, result.Success(4), got)
		assert.True(t, got.IsSuccess())
	})

	t.Run("failure keeps its descriptor", func(t *testing.T) {
		got := result.Map(result.Failure[string]("404"), length)
		assert.Equal(t, result.KindFailure, got.Kind)
		assert.Equal(t, "404", got.Error)
		assert.False(t, got.IsSuccess())
	})

	t.Run("empty stays empty", func(t *testing.T) {
		got := result.Map(result.Empty[string](), length)
		assert.Equal(t, result.Empty[int](), got)
	})
}
