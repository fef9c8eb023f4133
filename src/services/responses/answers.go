package responses

import (
	"fmt"
	"math"
	"strings"

	"Backend-Feedback/src/models"
)

// ValidateAnswers checks answers against the form's questions and returns them normalised
// and in question order. Blank answers to optional questions are dropped.
func ValidateAnswers(form *models.Form, in []models.Answer) ([]models.Answer, error) {
	byQuestion := make(map[string]models.AnswerValue, len(in))
	for _, a := range in {
		id := strings.TrimSpace(a.QuestionID)
		if form.QuestionByID(id) == nil {
			return nil, fmt.Errorf("unknown question %q", id)
		}
		if _, dup := byQuestion[id]; dup {
			return nil, fmt.Errorf("question %q answered more than once", id)
		}
		byQuestion[id] = a.Answer
	}

	out := make([]models.Answer, 0, len(byQuestion))
	for i := range form.Questions {
		q := &form.Questions[i]
		value, ok := byQuestion[q.ID]
		if !ok || value.IsEmpty() {
			if q.Required {
				return nil, fmt.Errorf("%q is required", q.QuestionText)
			}
			continue
		}

		normalized, err := normalizeAnswer(q, value)
		if err != nil {
			return nil, fmt.Errorf("%q: %v", q.QuestionText, err)
		}
		out = append(out, models.Answer{QuestionID: q.ID, Answer: normalized})
	}
	return out, nil
}

func normalizeAnswer(q *models.Question, v models.AnswerValue) (models.AnswerValue, error) {
	switch q.Type {
	case models.ShortAnswer, models.Paragraph:
		if v.Kind != models.AnswerText {
			return v, fmt.Errorf("expected a text answer")
		}
		return models.TextAnswer(strings.TrimSpace(v.Text)), nil

	case models.MultipleChoice, models.Dropdown:
		s, ok := v.StringValue()
		if !ok {
			return v, fmt.Errorf("expected a single choice")
		}
		option, ok := matchOption(q.Options, s)
		if !ok {
			return v, fmt.Errorf("%q is not one of the options", s)
		}
		return models.TextAnswer(option), nil

	case models.Checkbox:
		choices := v.Choices
		if v.Kind == models.AnswerText {
			choices = []string{v.Text}
		} else if v.Kind != models.AnswerChoices {
			return v, fmt.Errorf("expected a list of choices")
		}
		seen := make(map[string]bool, len(choices))
		picked := make([]string, 0, len(choices))
		for _, c := range choices {
			option, ok := matchOption(q.Options, c)
			if !ok {
				return v, fmt.Errorf("%q is not one of the options", c)
			}
			if seen[option] {
				continue
			}
			seen[option] = true
			picked = append(picked, option)
		}
		return models.ChoicesAnswer(picked...), nil

	case models.YesNo:
		s, ok := v.StringValue()
		if !ok {
			return v, fmt.Errorf("expected Yes or No")
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes":
			return models.TextAnswer(models.AnswerYes), nil
		case "no":
			return models.TextAnswer(models.AnswerNo), nil
		}
		return v, fmt.Errorf("expected Yes or No")

	case models.StarRating:
		n, ok := v.RatingValue()
		if !ok {
			return v, fmt.Errorf("expected a star rating")
		}
		maxStars := q.MaxStars
		if maxStars == 0 {
			maxStars = models.DefaultMaxStars
		}
		if n != math.Trunc(n) || n < 1 || n > float64(maxStars) {
			return v, fmt.Errorf("rating must be a whole number between 1 and %d", maxStars)
		}
		if reason := strings.TrimSpace(v.Reason); reason != "" {
			return models.RatingAnswer(n, reason), nil
		}
		return models.NumberAnswer(n), nil
	}
	return v, fmt.Errorf("unsupported question type %q", q.Type)
}

func matchOption(options []string, value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, o := range options {
		if o == value {
			return o, true
		}
	}
	return "", false
}

// IsLowerFeedback: a yes_no answered "No" or a star rating below the threshold.
func IsLowerFeedback(q *models.Question, v models.AnswerValue) bool {
	switch q.Type {
	case models.YesNo:
		s, ok := v.StringValue()
		return ok && strings.EqualFold(strings.TrimSpace(s), models.AnswerNo)
	case models.StarRating:
		n, ok := v.RatingValue()
		return ok && n < models.LowerFeedbackThreshold
	}
	return false
}

// flaggedAnswers lists the lower-feedback answers of r in question order.
func flaggedAnswers(form *models.Form, r *models.Response) []models.FlaggedAnswer {
	var flagged []models.FlaggedAnswer
	for i := range form.Questions {
		q := &form.Questions[i]
		v, ok := r.AnswerFor(q.ID)
		if !ok || !IsLowerFeedback(q, v) {
			continue
		}
		flagged = append(flagged, models.FlaggedAnswer{
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			Type:         q.Type,
			Answer:       v,
		})
	}
	return flagged
}
