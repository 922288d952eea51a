package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNarrow(t *testing.T) {
	assert.Equal(t, "0451234567", Narrow("０４５１２３４５６７"))
	assert.Equal(t, "ABC-123", Narrow("ＡＢＣ－１２３"))
	// Half-width katakana folds to full-width
	assert.Equal(t, "ヤマダ", Narrow("ﾔﾏﾀﾞ"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "0451234567", DigitsOnly("045-123-4567"))
	assert.Equal(t, "09011112222", DigitsOnly("０９０ー１１１１ー２２２２"))
	assert.Equal(t, "", DigitsOnly("無し"))
}

func TestNameKey(t *testing.T) {
	t.Run("removes half and full width spaces", func(t *testing.T) {
		assert.Equal(t, "山田太郎", NameKey("山田 太郎"))
		assert.Equal(t, "山田太郎", NameKey("山田　太郎"))
	})

	t.Run("same key for width variants", func(t *testing.T) {
		assert.Equal(t, NameKey("ﾔﾏﾀﾞ ﾀﾛｳ"), NameKey("ヤマダ　タロウ"))
	})
}

func TestLabelKey(t *testing.T) {
	assert.Equal(t, "長男", LabelKey(" 長男　"))
	assert.Equal(t, LabelKey("長男"), LabelKey("　長男"))
}

func TestApplyChain(t *testing.T) {
	assert.Equal(t, "0311112222", ApplyChain("　０３－１１１１－２２２２ ", "trim", "digits_only"))
}

func TestApplyUnknownNormalizerReturnsInput(t *testing.T) {
	assert.Equal(t, "value", Apply("value", "does_not_exist"))
}
