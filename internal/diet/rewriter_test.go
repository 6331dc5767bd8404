package diet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteUnknownRestrictionReturnsInputUnchanged(t *testing.T) {
	ingredients := []string{"2 cups Milk", "1 Egg", "3 tbsp sugar"}

	result := Rewrite(ingredients, "keto")

	assert.Equal(t, ingredients, result)
}

func TestRewriteVeganEggConversion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plural with quantity", "2 eggs", "100g flaxseed meal"},
		{"no quantity defaults to one", "egg", "50g flaxseed meal"},
		{"quantity after descriptor", "3 large eggs", "150g flaxseed meal"},
		{"decimal quantity", "1.5 eggs beaten", "75g flaxseed meal"},
		{"case insensitive", "2 Eggs", "100g flaxseed meal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Rewrite([]string{tt.input}, "vegan")
			assert.Equal(t, []string{tt.want}, result)
		})
	}
}

func TestRewriteHealthySubstitutions(t *testing.T) {
	result := Rewrite([]string{"1 cup white rice", "2 tbsp vegetable oil"}, "healthy")

	assert.Equal(t, []string{
		"1 cup brown rice or quinoa",
		"2 tbsp olive oil or coconut oil",
	}, result)
}

func TestRewriteVeganSubstitutions(t *testing.T) {
	result := Rewrite([]string{"1 cup Milk", "200g butter, softened"}, "vegan")

	assert.Equal(t, []string{
		"1 cup almond milk",
		"200g vegan butter, softened",
	}, result)
}

func TestRewriteUnmatchedLineKeptVerbatim(t *testing.T) {
	// Original casing must survive when no trigger matches.
	result := Rewrite([]string{"2 Fresh Tomatoes, diced"}, "healthy")

	assert.Equal(t, []string{"2 Fresh Tomatoes, diced"}, result)
}

func TestRewriteFirstMatchingTriggerWins(t *testing.T) {
	// "milk" precedes "butter" in the vegan rule set, so only milk is
	// substituted even though both triggers appear in the line.
	result := Rewrite([]string{"1 cup milk and some butter"}, "vegan")

	assert.Equal(t, []string{"1 cup almond milk and some butter"}, result)
}

func TestRewritePreservesLengthAndOrder(t *testing.T) {
	ingredients := []string{"1 cup sugar", "salt to taste", "2 potatoes", "basil"}

	result := Rewrite(ingredients, "healthy")

	assert.Len(t, result, len(ingredients))
	assert.Equal(t, "1 cup stevia or maple syrup", result[0])
	assert.Equal(t, "salt to taste", result[1])
	assert.Equal(t, "basil", result[3])
}

func TestRewriteEmptyList(t *testing.T) {
	result := Rewrite([]string{}, "vegan")

	assert.Empty(t, result)
}
