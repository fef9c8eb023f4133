package forms

import (
	"fmt"
	"strings"

	"Backend-Feedback/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildQuestions validates and normalises question input. Create and update both go through it.
func BuildQuestions(in []models.QuestionDto) ([]models.Question, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("at least one question is required")
	}

	seen := make(map[string]bool, len(in))
	out := make([]models.Question, 0, len(in))

	for i, dto := range in {
		n := i + 1
		q := models.Question{
			ID:           strings.TrimSpace(dto.ID),
			QuestionText: strings.TrimSpace(dto.QuestionText),
			Type:         dto.Type,
			Required:     dto.Required,
		}

		if q.QuestionText == "" {
			return nil, fmt.Errorf("question %d: text is required", n)
		}
		if q.ID == "" {
			q.ID = primitive.NewObjectID().Hex()
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question %d: duplicate id %q", n, q.ID)
		}
		seen[q.ID] = true

		switch q.Type {
		case models.ShortAnswer, models.Paragraph:
		case models.MultipleChoice, models.Checkbox, models.Dropdown:
			opts, err := choiceOptions(dto.Options)
			if err != nil {
				return nil, fmt.Errorf("question %d: %v", n, err)
			}
			q.Options = opts
		case models.YesNo:
			if len(dto.Options) > 0 && !isYesNo(dto.Options) {
				return nil, fmt.Errorf("question %d: yes/no options must be exactly [Yes, No]", n)
			}
			q.Options = []string{models.AnswerYes, models.AnswerNo}
		case models.StarRating:
			q.MaxStars = dto.MaxStars
			if q.MaxStars == 0 {
				q.MaxStars = models.DefaultMaxStars
			}
			if q.MaxStars < 1 || q.MaxStars > 10 {
				return nil, fmt.Errorf("question %d: maxStars must be between 1 and 10", n)
			}
		default:
			return nil, fmt.Errorf("question %d: unsupported type %q", n, dto.Type)
		}

		out = append(out, q)
	}
	return out, nil
}

func choiceOptions(raw []string) ([]string, error) {
	opts := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, o := range raw {
		o = strings.TrimSpace(o)
		if o == "" {
			return nil, fmt.Errorf("options must not be empty")
		}
		if seen[o] {
			return nil, fmt.Errorf("duplicate option %q", o)
		}
		seen[o] = true
		opts = append(opts, o)
	}
	if len(opts) < 2 {
		return nil, fmt.Errorf("at least 2 options are required")
	}
	return opts, nil
}

func isYesNo(opts []string) bool {
	return len(opts) == 2 &&
		strings.TrimSpace(opts[0]) == models.AnswerYes &&
		strings.TrimSpace(opts[1]) == models.AnswerNo
}

// NormalizeBatches trims, drops blanks and de-duplicates while keeping order.
func NormalizeBatches(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, b := range in {
		b = strings.TrimSpace(b)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
