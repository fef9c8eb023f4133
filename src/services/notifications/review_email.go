package notifications

import (
	"bytes"
	"html/template"

	"Backend-Feedback/src/models"
)

type ReviewEmailData struct {
	TeacherName string
	FormTitle   string
	Approved    bool
	Reason      string
	FormLink    string
}

const reviewEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <p>Dear {{.TeacherName}},</p>
  {{if .Approved}}
  <p>Your feedback form <strong>{{.FormTitle}}</strong> has been <strong>approved</strong> and is now open to students.</p>
  <p>Share link: <a href="{{.FormLink}}">{{.FormLink}}</a></p>
  {{else}}
  <p>Your feedback form <strong>{{.FormTitle}}</strong> has been <strong>rejected</strong>.</p>
  <p>Reason: {{.Reason}}</p>
  <p>Please create a new form with the requested changes.</p>
  {{end}}
  <p>Academic Feedback System</p>
</body>
</html>`

var reviewEmailTmpl = template.Must(template.New("review").Parse(reviewEmailHTML))

// NewReviewEmailData describes the review decision on form for its creator.
func NewReviewEmailData(teacher *models.Account, form *models.Form, formLink string) ReviewEmailData {
	data := ReviewEmailData{
		TeacherName: teacher.FullName,
		FormTitle:   form.Title,
		Approved:    form.ApprovalStatus == models.ApprovalApproved,
		FormLink:    formLink,
	}
	if form.RejectionReason != nil {
		data.Reason = *form.RejectionReason
	}
	return data
}

func ReviewEmailSubject(data ReviewEmailData) string {
	if data.Approved {
		return "Form approved: " + data.FormTitle
	}
	return "Form rejected: " + data.FormTitle
}

func RenderReviewEmailHTML(data ReviewEmailData) (string, error) {
	var buf bytes.Buffer
	if err := reviewEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
