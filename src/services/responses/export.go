package responses

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"Backend-Feedback/src/models"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const exportSheet = "Responses"

// Export renders the form's responses as an xlsx workbook: one row per response,
// one column per question.
func (s *Service) Export(ctx context.Context, user *models.CurrentUser, formID primitive.ObjectID, batches []string) (*bytes.Buffer, string, error) {
	form, err := s.viewableForm(ctx, user, formID)
	if err != nil {
		return nil, "", err
	}
	list, err := s.store.ListResponses(ctx, models.ResponseFilter{FormID: form.ID, Batches: CleanBatches(batches)})
	if err != nil {
		return nil, "", err
	}

	buf, err := s.buildWorkbook(form, list)
	if err != nil {
		return nil, "", fmt.Errorf("build workbook: %w", err)
	}
	return buf, exportFileName(form), nil
}

func (s *Service) buildWorkbook(form *models.Form, list []models.Response) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Submitted At", "Student Name", "Batch", "Re-feedback"}
	for _, q := range form.Questions {
		header = append(header, q.QuestionText)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastHeader, bold); err != nil {
		return nil, err
	}

	for i := range list {
		r := &list[i]
		row := []interface{}{
			r.SubmittedAt.In(s.loc).Format("2006-01-02 15:04"),
			r.StudentName,
			r.Batch,
			yesIf(r.IsReFeedback),
		}
		for _, q := range form.Questions {
			if v, ok := r.AnswerFor(q.ID); ok {
				row = append(row, CellText(v))
			} else {
				row = append(row, "")
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func yesIf(b bool) string {
	if b {
		return models.AnswerYes
	}
	return ""
}

// CellText flattens an answer for a spreadsheet cell.
func CellText(v models.AnswerValue) string {
	switch v.Kind {
	case models.AnswerText:
		return v.Text
	case models.AnswerChoices:
		return strings.Join(v.Choices, ", ")
	case models.AnswerNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case models.AnswerRating:
		rating := strconv.FormatFloat(v.Number, 'f', -1, 64)
		if v.Reason != "" {
			return fmt.Sprintf("%s (%s)", rating, v.Reason)
		}
		return rating
	}
	return ""
}

func exportFileName(form *models.Form) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, form.Title)
	if name == "" {
		name = form.ID.Hex()
	}
	return fmt.Sprintf("%s_responses.xlsx", name)
}
