package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// RecipeDraft is a generated recipe before it is persisted.
type RecipeDraft struct {
	Title        string `json:"title"`
	MinutesTakes int    `json:"minutesTakes"`
	Steps        string `json:"steps"`
}

// GenerateRecipe asks the provider for a recipe built from the given
// ingredient names. When the completion does not carry a parseable payload,
// a plain draft is synthesized from the raw text so the caller still gets a
// recipe rather than an error.
func GenerateRecipe(ctx context.Context, provider CompletionProvider, ingredients []string) (*RecipeDraft, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("at least one ingredient is required")
	}

	prompt := fmt.Sprintf("Create a recipe using: %s", strings.Join(ingredients, ", "))
	completion, err := provider.Complete(ctx, recipeInstructions, []Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("completion provider: %w", err)
	}

	var draft RecipeDraft
	if err := json.Unmarshal([]byte(ExtractPayload(completion)), &draft); err != nil || draft.Title == "" {
		return fallbackDraft(ingredients, completion), nil
	}
	if draft.MinutesTakes <= 0 {
		draft.MinutesTakes = 30
	}

	return &draft, nil
}

func fallbackDraft(ingredients []string, completion string) *RecipeDraft {
	named := ingredients
	if len(named) > 3 {
		named = named[:3]
	}
	return &RecipeDraft{
		Title:        fmt.Sprintf("Recipe with %s", strings.Join(named, ", ")),
		MinutesTakes: 30,
		Steps:        strings.TrimSpace(completion),
	}
}
