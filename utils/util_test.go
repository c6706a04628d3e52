package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils"
)

func TestFind(t *testing.T) {
	data := []string{"a", "b", "c"}
	ok, failed := utils.Find(data, nil)
	assert.Equal(t, data, ok)
	assert.Empty(t, failed)

	ok, failed = utils.Find(data, []int32{2, 5, 0, -1})
	assert.Equal(t, []string{"c", "a"}, ok)
	assert.Equal(t, []int32{5, -1}, failed)
}
