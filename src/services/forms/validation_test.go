package forms

import (
	"testing"

	"Backend-Feedback/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestions(t *testing.T) {
	t.Run("requires at least one question", func(t *testing.T) {
		_, err := BuildQuestions(nil)
		assert.Error(t, err)
	})

	t.Run("generates missing ids and trims text", func(t *testing.T) {
		qs, err := BuildQuestions([]models.QuestionDto{
			{QuestionText: "  Name  ", Type: models.ShortAnswer},
		})
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.NotEmpty(t, qs[0].ID)
		assert.Equal(t, "Name", qs[0].QuestionText)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := BuildQuestions([]models.QuestionDto{
			{ID: "a", QuestionText: "One", Type: models.ShortAnswer},
			{ID: "a", QuestionText: "Two", Type: models.Paragraph},
		})
		assert.Error(t, err)
	})

	t.Run("choice questions need two distinct options", func(t *testing.T) {
		for _, qt := range []models.QuestionType{models.MultipleChoice, models.Checkbox, models.Dropdown} {
			_, err := BuildQuestions([]models.QuestionDto{{QuestionText: "Pick", Type: qt, Options: []string{"A"}}})
			assert.Error(t, err, qt)

			_, err = BuildQuestions([]models.QuestionDto{{QuestionText: "Pick", Type: qt, Options: []string{"A", " A "}}})
			assert.Error(t, err, qt)

			_, err = BuildQuestions([]models.QuestionDto{{QuestionText: "Pick", Type: qt, Options: []string{"A", ""}}})
			assert.Error(t, err, qt)

			qs, err := BuildQuestions([]models.QuestionDto{{QuestionText: "Pick", Type: qt, Options: []string{" A", "B "}}})
			require.NoError(t, err, qt)
			assert.Equal(t, []string{"A", "B"}, qs[0].Options)
		}
	})

	t.Run("yes_no options are normalised", func(t *testing.T) {
		qs, err := BuildQuestions([]models.QuestionDto{{QuestionText: "Ok?", Type: models.YesNo}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Yes", "No"}, qs[0].Options)

		_, err = BuildQuestions([]models.QuestionDto{{QuestionText: "Ok?", Type: models.YesNo, Options: []string{"No", "Yes"}}})
		assert.Error(t, err)
	})

	t.Run("star rating bounds", func(t *testing.T) {
		qs, err := BuildQuestions([]models.QuestionDto{{QuestionText: "Rate", Type: models.StarRating}})
		require.NoError(t, err)
		assert.Equal(t, models.DefaultMaxStars, qs[0].MaxStars)

		qs, err = BuildQuestions([]models.QuestionDto{{QuestionText: "Rate", Type: models.StarRating, MaxStars: 5}})
		require.NoError(t, err)
		assert.Equal(t, 5, qs[0].MaxStars)

		_, err = BuildQuestions([]models.QuestionDto{{QuestionText: "Rate", Type: models.StarRating, MaxStars: 11}})
		assert.Error(t, err)
		_, err = BuildQuestions([]models.QuestionDto{{QuestionText: "Rate", Type: models.StarRating, MaxStars: -1}})
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := BuildQuestions([]models.QuestionDto{{QuestionText: "Grid", Type: "grid"}})
		assert.Error(t, err)
	})
}

func TestNormalizeBatches(t *testing.T) {
	assert.Equal(t, []string{"2024", "2025"}, NormalizeBatches([]string{" 2024", "", "2025", "2024 "}))
	assert.Empty(t, NormalizeBatches(nil))
}
