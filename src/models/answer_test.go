package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAnswerValueFromJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AnswerValue
	}{
		{"text", `"Yes"`, TextAnswer("Yes")},
		{"choices", `["A","C"]`, ChoicesAnswer("A", "C")},
		{"number", `7`, NumberAnswer(7)},
		{"rating object", `{"rating":5,"reason":"Too fast"}`, RatingAnswer(5, "Too fast")},
		{"rating as string", `{"rating":" 6 ","reason":""}`, RatingAnswer(6, "")},
		{"null", `null`, AnswerValue{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AnswerValue
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.True(t, tt.want.Equal(got), "got %+v", got)
			assert.Equal(t, tt.want.Kind, got.Kind)
		})
	}

	var bad AnswerValue
	assert.Error(t, json.Unmarshal([]byte(`{"reason":"no rating"}`), &bad))
}

func TestAnswerJSONShape(t *testing.T) {
	b, err := json.Marshal([]Answer{
		{QuestionID: "q1", Answer: RatingAnswer(4, "Late feedback")},
		{QuestionID: "q2", Answer: ChoicesAnswer()},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"questionId":"q1","answer":{"rating":4,"reason":"Late feedback"}},
		{"questionId":"q2","answer":[]}
	]`, string(b))
}

// Older documents store plain int32 ratings; both shapes must load.
func TestResponseFromStoredDocument(t *testing.T) {
	doc, err := bson.Marshal(bson.D{
		{Key: "studentName", Value: "Jane"},
		{Key: "batch", Value: "2024"},
		{Key: "answers", Value: bson.A{
			bson.D{{Key: "questionId", Value: "q-yes"}, {Key: "answer", Value: "No"}},
			bson.D{{Key: "questionId", Value: "q-star"}, {Key: "answer", Value: int32(6)}},
			bson.D{{Key: "questionId", Value: "q-box"}, {Key: "answer", Value: bson.A{"A", "B"}}},
			bson.D{{Key: "questionId", Value: "q-why"}, {Key: "answer", Value: bson.D{
				{Key: "rating", Value: int64(3)}, {Key: "reason", Value: "Hard labs"},
			}}},
		}},
	})
	require.NoError(t, err)

	var r Response
	require.NoError(t, bson.Unmarshal(doc, &r))
	require.Len(t, r.Answers, 4)

	v, ok := r.AnswerFor("q-yes")
	require.True(t, ok)
	assert.Equal(t, TextAnswer("No"), v)

	v, _ = r.AnswerFor("q-star")
	n, ok := v.RatingValue()
	require.True(t, ok)
	assert.Equal(t, 6.0, n)

	v, _ = r.AnswerFor("q-box")
	assert.Equal(t, []string{"A", "B"}, v.Choices)

	v, _ = r.AnswerFor("q-why")
	assert.Equal(t, RatingAnswer(3, "Hard labs"), v)
}

func TestAnswerValueEqual(t *testing.T) {
	assert.True(t, NumberAnswer(5).Equal(RatingAnswer(5, "")))
	assert.False(t, NumberAnswer(5).Equal(NumberAnswer(6)))
	assert.True(t, ChoicesAnswer("A", "B").Equal(ChoicesAnswer("A", "B")))
	assert.False(t, TextAnswer("Yes").Equal(TextAnswer("No")))
}
