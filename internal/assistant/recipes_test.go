package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecipeParsesPayload(t *testing.T) {
	mockProvider := new(MockProvider)
	mockProvider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`Here is your recipe: {"title":"Fried Rice","minutesTakes":25,"steps":"1. Cook rice. 2. Fry it."}`, nil)

	draft, err := GenerateRecipe(context.Background(), mockProvider, []string{"rice", "eggs"})
	require.NoError(t, err)
	assert.Equal(t, "Fried Rice", draft.Title)
	assert.Equal(t, 25, draft.MinutesTakes)
	assert.Equal(t, "1. Cook rice. 2. Fry it.", draft.Steps)
}

func TestGenerateRecipeFallsBackToPlainText(t *testing.T) {
	mockProvider := new(MockProvider)
	mockProvider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("Just combine everything and cook for 30 minutes.", nil)

	draft, err := GenerateRecipe(context.Background(), mockProvider, []string{"rice", "eggs", "peas", "ham"})
	require.NoError(t, err)

	// The title names at most the first three ingredients.
	assert.Equal(t, "Recipe with rice, eggs, peas", draft.Title)
	assert.Equal(t, 30, draft.MinutesTakes)
	assert.Equal(t, "Just combine everything and cook for 30 minutes.", draft.Steps)
}

func TestGenerateRecipeRequiresIngredients(t *testing.T) {
	_, err := GenerateRecipe(context.Background(), new(MockProvider), nil)
	assert.Error(t, err)
}
