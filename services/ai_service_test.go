// file: services/ai_service_test.go
package services

import (
	"context"
	"testing"

	"vibebuild/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDraft(t *testing.T) {
	raw := `{"title":"Green Hack","description":"climate tech sprint","theme_tags":"climate,iot",
		"scoring_dimensions":[{"name":"Innovation","weight":60},{"name":"Feasibility","weight":40}],
		"awards":[{"name":"Grand Prize","detail":"trip to the expo"}]}`

	draft, err := decodeDraft(raw)
	require.NoError(t, err)
	assert.Equal(t, "Green Hack", draft.Title)
	require.Len(t, draft.ScoringDimensions, 2)
	assert.Equal(t, 60, draft.ScoringDimensions[0].Weight)
}

func TestDecodeDraftStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"title\":\"Green Hack\",\"description\":\"x\"}\n```"
	draft, err := decodeDraft(raw)
	require.NoError(t, err)
	assert.Equal(t, "Green Hack", draft.Title)
}

func TestDecodeDraftRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"sorry, I can't do that", "{}", `{"description":"no title"}`} {
		_, err := decodeDraft(raw)
		require.Error(t, err, "raw: %s", raw)
		assert.True(t, apperrors.IsKind(err, apperrors.Validation))
	}
}

func TestGenerateDraftRequiresConfiguration(t *testing.T) {
	svc := NewAIService("", "gemini-1.5-flash")
	_, err := svc.GenerateHackathonDraft(context.Background(), "climate tech")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Validation))
}
