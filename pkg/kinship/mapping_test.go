package kinship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("known labels", func(t *testing.T) {
		m, ok := Lookup("長男")
		require.True(t, ok)
		assert.Equal(t, "KAN2001", m.Code)
		assert.Equal(t, CategoryChild, m.Category)

		m, ok = Lookup("息子")
		require.True(t, ok)
		assert.Equal(t, "KAN2000", m.Code)
	})

	t.Run("surface forms collapse onto one code", func(t *testing.T) {
		a, ok := Lookup("夫")
		require.True(t, ok)
		b, ok := Lookup("主人")
		require.True(t, ok)
		assert.Equal(t, a, b)
	})

	t.Run("whitespace and width variants normalize to the same key", func(t *testing.T) {
		a, ok := Lookup(" 長男　")
		require.True(t, ok)
		b, ok := Lookup("長男")
		require.True(t, ok)
		assert.Equal(t, a, b)
	})

	t.Run("near variants are not fuzzy matched", func(t *testing.T) {
		_, ok := Lookup("姪(従姉の長女)")
		assert.False(t, ok)
	})

	t.Run("unknown label misses", func(t *testing.T) {
		_, ok := Lookup("遠い親戚の人")
		assert.False(t, ok)
	})
}

func TestReverseSymmetry(t *testing.T) {
	// For every entry whose reverse code resolves to a table entry, that
	// entry's reverse must point back at the original code.
	for label, m := range All() {
		reverse, ok := ByCode(m.Reverse.Code)
		if !ok {
			continue // generic inverse codes are not forward codes
		}
		assert.Equal(t, m.Code, reverse.Reverse.Code,
			"label %q: reverse of %s should point back to %s", label, m.Reverse.Code, m.Code)
	}
}

func TestEntriesSharingACodeAgree(t *testing.T) {
	byCodeSeen := make(map[string]Mapping)
	for label, m := range All() {
		if prev, ok := byCodeSeen[m.Code]; ok {
			assert.Equal(t, prev, m, "label %q disagrees with other entries for %s", label, m.Code)
			continue
		}
		byCodeSeen[m.Code] = m
	}
}

func TestIsSelfReference(t *testing.T) {
	assert.True(t, IsSelfReference("本人"))
	assert.True(t, IsSelfReference("ご本人様"))
	assert.True(t, IsSelfReference("　本人 "))
	assert.False(t, IsSelfReference("長男"))
	assert.False(t, IsSelfReference(""))
}

func TestByCode(t *testing.T) {
	m, ok := ByCode("KAN2001")
	require.True(t, ok)
	assert.Equal(t, "長男", m.CanonicalName)

	_, ok = ByCode("KAN3900")
	assert.False(t, ok, "generic inverse codes have no forward entry")
}
