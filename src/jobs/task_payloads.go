package jobs

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	TypePurgeResponses = "responses:purge"
	TypeReviewNotify   = "form:review-notify"
)

type FormPayload struct {
	FormID string `json:"formId"`
}

func (p *FormPayload) Normalize() {
	p.FormID = strings.TrimSpace(p.FormID)
}

func newFormTask(taskType, formID string) (*asynq.Task, error) {
	payload := FormPayload{FormID: formID}
	payload.Normalize()

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, b), nil
}

// NewPurgeResponsesTask sweeps responses left behind by a deleted form.
func NewPurgeResponsesTask(formID string) (*asynq.Task, error) {
	return newFormTask(TypePurgeResponses, formID)
}

// NewReviewNotifyTask mails the form's creator about an approve/reject decision.
func NewReviewNotifyTask(formID string) (*asynq.Task, error) {
	return newFormTask(TypeReviewNotify, formID)
}

func PurgeTaskID(formID string) string {
	return "purge-responses-" + strings.TrimSpace(formID)
}
