package notifications

import (
	"testing"

	"Backend-Feedback/src/config"
	"Backend-Feedback/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewEmail(t *testing.T) {
	teacher := &models.Account{FullName: "Tom <Teacher>", Email: "tom@example.edu"}

	t.Run("approved", func(t *testing.T) {
		form := &models.Form{Title: "Week 1", ApprovalStatus: models.ApprovalApproved}
		data := NewReviewEmailData(teacher, form, "http://localhost:5173/fill/abc")
		assert.Equal(t, "Form approved: Week 1", ReviewEmailSubject(data))

		html, err := RenderReviewEmailHTML(data)
		require.NoError(t, err)
		assert.Contains(t, html, "http://localhost:5173/fill/abc")
		assert.Contains(t, html, "Tom &lt;Teacher&gt;")
		assert.NotContains(t, html, "Reason:")
	})

	t.Run("rejected", func(t *testing.T) {
		reason := "Questions are unclear"
		form := &models.Form{Title: "Week 1", ApprovalStatus: models.ApprovalRejected, RejectionReason: &reason}
		data := NewReviewEmailData(teacher, form, "")
		assert.Equal(t, "Form rejected: Week 1", ReviewEmailSubject(data))

		html, err := RenderReviewEmailHTML(data)
		require.NoError(t, err)
		assert.Contains(t, html, "Reason: Questions are unclear")
	})
}

func TestNewSMTPSender(t *testing.T) {
	_, err := NewSMTPSender(config.SMTPConfig{Port: 587})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
	assert.Contains(t, err.Error(), "SMTP_FROM")

	sender, err := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.edu", Port: 587, From: "noreply@example.edu"})
	require.NoError(t, err)
	var _ MailSender = sender
}
