package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"listloop-server/internal/utils"
)

func TestGenerateUniqueID(t *testing.T) {
	t.Run("prefixed and fixed length", func(t *testing.T) {
		id := utils.GenerateUniqueID(utils.PrefixTask)
		assert.Len(t, id, 13)
		assert.True(t, strings.HasPrefix(id, utils.PrefixTask))
		assert.Equal(t, id, strings.ToUpper(id))
	})

	t.Run("ids do not collide in a small sample", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := utils.GenerateUniqueID(utils.PrefixList)
			assert.False(t, seen[id], id)
			seen[id] = true
		}
	})
}

func TestGenerateTempID(t *testing.T) {
	id := utils.GenerateTempID()
	assert.True(t, strings.HasPrefix(id, "tmp-"))
	assert.Len(t, id, len("tmp-")+11)
}
