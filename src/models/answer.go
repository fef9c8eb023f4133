package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type AnswerKind uint8

const (
	AnswerEmpty AnswerKind = iota
	AnswerText
	AnswerChoices
	AnswerNumber
	AnswerRating
)

// AnswerValue holds one of: string | []string | number | {rating, reason}.
type AnswerValue struct {
	Kind    AnswerKind
	Text    string
	Choices []string
	Number  float64
	Reason  string
}

func TextAnswer(s string) AnswerValue       { return AnswerValue{Kind: AnswerText, Text: s} }
func ChoicesAnswer(c ...string) AnswerValue { return AnswerValue{Kind: AnswerChoices, Choices: c} }
func NumberAnswer(n float64) AnswerValue    { return AnswerValue{Kind: AnswerNumber, Number: n} }
func RatingAnswer(n float64, reason string) AnswerValue {
	return AnswerValue{Kind: AnswerRating, Number: n, Reason: reason}
}

type ratingDoc struct {
	Rating json.RawMessage `json:"rating"`
	Reason string          `json:"reason"`
}

// IsEmpty is true for null, blank text and empty selections.
func (a AnswerValue) IsEmpty() bool {
	switch a.Kind {
	case AnswerText:
		return strings.TrimSpace(a.Text) == ""
	case AnswerChoices:
		return len(a.Choices) == 0
	case AnswerNumber, AnswerRating:
		return false
	}
	return true
}

// StringValue returns the text form of a single-valued answer.
func (a AnswerValue) StringValue() (string, bool) {
	switch a.Kind {
	case AnswerText:
		return a.Text, true
	case AnswerChoices:
		if len(a.Choices) == 1 {
			return a.Choices[0], true
		}
	case AnswerNumber, AnswerRating:
		return strconv.FormatFloat(a.Number, 'f', -1, 64), true
	}
	return "", false
}

// RatingValue extracts a star rating from a number, a {rating, reason} object or a numeric string.
func (a AnswerValue) RatingValue() (float64, bool) {
	switch a.Kind {
	case AnswerNumber, AnswerRating:
		return a.Number, true
	case AnswerText:
		n, err := strconv.ParseFloat(strings.TrimSpace(a.Text), 64)
		return n, err == nil
	}
	return 0, false
}

func (a AnswerValue) Equal(b AnswerValue) bool {
	if a.Kind == AnswerChoices || b.Kind == AnswerChoices {
		if a.Kind != b.Kind || len(a.Choices) != len(b.Choices) {
			return false
		}
		for i := range a.Choices {
			if a.Choices[i] != b.Choices[i] {
				return false
			}
		}
		return true
	}
	if a.Reason != b.Reason {
		return false
	}
	as, aok := a.StringValue()
	bs, bok := b.StringValue()
	return aok == bok && as == bs
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerText:
		return json.Marshal(a.Text)
	case AnswerChoices:
		if a.Choices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Choices)
	case AnswerNumber:
		return json.Marshal(a.Number)
	case AnswerRating:
		return json.Marshal(struct {
			Rating float64 `json:"rating"`
			Reason string  `json:"reason"`
		}{a.Number, a.Reason})
	}
	return []byte("null"), nil
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = AnswerValue{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		a.Kind = AnswerText
		return json.Unmarshal(data, &a.Text)
	case '[':
		a.Kind = AnswerChoices
		a.Choices = []string{}
		return json.Unmarshal(data, &a.Choices)
	case '{':
		var doc ratingDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		n, err := parseRating(doc.Rating)
		if err != nil {
			return err
		}
		a.Kind = AnswerRating
		a.Number = n
		a.Reason = doc.Reason
		return nil
	default:
		a.Kind = AnswerNumber
		return json.Unmarshal(data, &a.Number)
	}
}

func parseRating(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("rating is required")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	var n float64
	err := json.Unmarshal(raw, &n)
	return n, err
}

func (a AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch a.Kind {
	case AnswerText:
		return bson.MarshalValue(a.Text)
	case AnswerChoices:
		choices := a.Choices
		if choices == nil {
			choices = []string{}
		}
		return bson.MarshalValue(choices)
	case AnswerNumber:
		return bson.MarshalValue(a.Number)
	case AnswerRating:
		return bson.MarshalValue(bson.D{{Key: "rating", Value: a.Number}, {Key: "reason", Value: a.Reason}})
	}
	return bsontype.Null, nil, nil
}

func (a *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*a = AnswerValue{}
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Null, bsontype.Undefined:
		return nil
	case bsontype.String:
		a.Kind = AnswerText
		a.Text = raw.StringValue()
	case bsontype.Array:
		values, err := raw.Array().Values()
		if err != nil {
			return err
		}
		a.Kind = AnswerChoices
		a.Choices = make([]string, 0, len(values))
		for _, v := range values {
			if s, ok := v.StringValueOK(); ok {
				a.Choices = append(a.Choices, s)
			}
		}
	case bsontype.Double, bsontype.Int32, bsontype.Int64:
		a.Kind = AnswerNumber
		a.Number = bsonNumber(raw)
	case bsontype.EmbeddedDocument:
		doc := raw.Document()
		a.Kind = AnswerRating
		if v, err := doc.LookupErr("rating"); err == nil {
			a.Number = bsonNumber(v)
		}
		if v, err := doc.LookupErr("reason"); err == nil {
			a.Reason, _ = v.StringValueOK()
		}
	default:
		return fmt.Errorf("unsupported answer type %s", t)
	}
	return nil
}

func bsonNumber(v bson.RawValue) float64 {
	if d, ok := v.DoubleOK(); ok {
		return d
	}
	if i, ok := v.Int32OK(); ok {
		return float64(i)
	}
	if i, ok := v.Int64OK(); ok {
		return float64(i)
	}
	return 0
}
