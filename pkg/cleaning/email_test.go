package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanEmail(t *testing.T) {
	t.Run("empty is valid", func(t *testing.T) {
		result := CleanEmail("")
		assert.True(t, result.IsValid)
		assert.Equal(t, "", result.Cleaned)
	})

	t.Run("plain address passes through", func(t *testing.T) {
		result := CleanEmail("taro@example.co.jp")
		assert.True(t, result.IsValid)
		assert.Equal(t, "taro@example.co.jp", result.Cleaned)
		assert.Empty(t, result.Issues)
	})

	t.Run("trailing free text moved to notes", func(t *testing.T) {
		result := CleanEmail("taro@example.co.jp 長男のアドレス")
		assert.True(t, result.IsValid)
		assert.Equal(t, "taro@example.co.jp", result.Cleaned)
		assert.Contains(t, result.MovedToNotes, "長男のアドレス")
		assert.Len(t, result.Issues, 1)
	})

	t.Run("full width input is folded", func(t *testing.T) {
		result := CleanEmail("ｔａｒｏ＠ｅｘａｍｐｌｅ．ｃｏ．ｊｐ")
		assert.True(t, result.IsValid)
		assert.Equal(t, "taro@example.co.jp", result.Cleaned)
	})

	t.Run("uppercase is lowered", func(t *testing.T) {
		result := CleanEmail("Taro@Example.co.jp")
		assert.Equal(t, "taro@example.co.jp", result.Cleaned)
	})

	t.Run("invalid shape is cleared and preserved", func(t *testing.T) {
		result := CleanEmail("taro@localhost")
		assert.False(t, result.IsValid)
		assert.Equal(t, "", result.Cleaned)
		assert.Equal(t, "taro@localhost", result.MovedToNotes)
		assert.NotEmpty(t, result.Issues)
	})

	t.Run("non-email text is cleared and preserved", func(t *testing.T) {
		result := CleanEmail("メール無し")
		assert.False(t, result.IsValid)
		assert.Equal(t, "", result.Cleaned)
		assert.Equal(t, "メール無し", result.MovedToNotes)
	})
}

func TestCleanEmail_Idempotent(t *testing.T) {
	inputs := []string{"taro@example.co.jp 自宅", "ＴＡＲＯ＠ＥＸＡＭＰＬＥ．ＪＰ", "", "メール無し"}
	for _, input := range inputs {
		first := CleanEmail(input)
		second := CleanEmail(first.Cleaned)
		assert.Equal(t, first.Cleaned, second.Cleaned, "input %q", input)
		assert.Empty(t, second.Issues)
	}
}
