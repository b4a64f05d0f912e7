package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverse(t *testing.T) {
	assert.Equal(t, []int{3, 2, 1}, Reverse([]int{1, 2, 3}))

	var empty []int
	assert.Nil(t, Reverse(empty))

	t.Run("原切片不被修改", func(t *testing.T) {
		s := []string{"a", "b"}
		assert.Equal(t, []string{"b", "a"}, Reverse(s))
		assert.Equal(t, []string{"a", "b"}, s)
	})
}
