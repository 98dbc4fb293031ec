package lexicon

import (
	"testing"

	"diarylens/domain/analytics"
	"diarylens/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversEveryCategory(t *testing.T) {
	s := Default()
	assert.Equal(t, analytics.AllCategories, s.Categories())
	for _, c := range analytics.AllCategories {
		assert.NotEmpty(t, s.Words(c), "category %s", c)
	}
}

func TestWords_ReturnsCopy(t *testing.T) {
	s := Default()
	words := s.Words(analytics.CategoryNegative)
	words[0] = "mutated"
	assert.NotEqual(t, "mutated", s.Words(analytics.CategoryNegative)[0])
}

func TestOverlappingMembership(t *testing.T) {
	s := Default()
	cats := s.CategoriesOf("疲れ")
	assert.Contains(t, cats, analytics.CategoryNegative)
	assert.Contains(t, cats, analytics.CategoryPhysicalSymptom)
}

func TestNew_RejectsSharedLightDeep(t *testing.T) {
	_, err := New(map[analytics.Category][]string{
		analytics.CategoryLightNegative: {"疲れ"},
		analytics.CategoryDeepNegative:  {"疲れ"},
	})
	assert.Error(t, err)
}

func TestNew_RejectsUnknownCategory(t *testing.T) {
	_, err := New(map[analytics.Category][]string{"weather": {"雨"}})
	assert.ErrorIs(t, err, core.ErrUnknownCategory)
}

func TestNew_RejectsEmptyTrigger(t *testing.T) {
	_, err := New(map[analytics.Category][]string{analytics.CategoryWork: {"仕事", ""}})
	assert.Error(t, err)
}

func TestNew_CopiesInput(t *testing.T) {
	in := map[analytics.Category][]string{analytics.CategoryWork: {"仕事"}}
	s, err := New(in)
	require.NoError(t, err)
	in[analytics.CategoryWork][0] = "changed"
	assert.Equal(t, []string{"仕事"}, s.Words(analytics.CategoryWork))
}
