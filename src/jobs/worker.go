package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"Backend-Feedback/src/models"
	"Backend-Feedback/src/services/forms"
	"Backend-Feedback/src/services/notifications"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store interface {
	FindFormByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error)
	FindAccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	DeleteResponsesByForm(ctx context.Context, formID primitive.ObjectID) (int64, error)
}

type Handlers struct {
	store   Store
	mailer  notifications.MailSender
	baseURL string
}

// NewHandlers wires task handlers; a nil mailer turns review mails into log lines.
func NewHandlers(store Store, mailer notifications.MailSender, baseURL string) *Handlers {
	return &Handlers{store: store, mailer: mailer, baseURL: baseURL}
}

func decodeFormID(t *asynq.Task) (primitive.ObjectID, error) {
	var payload FormPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return primitive.NilObjectID, fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	payload.Normalize()
	id, err := primitive.ObjectIDFromHex(payload.FormID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid form id %q: %w", payload.FormID, asynq.SkipRetry)
	}
	return id, nil
}

// HandlePurgeResponses deletes responses of a form that no longer exists.
func (h *Handlers) HandlePurgeResponses(ctx context.Context, t *asynq.Task) error {
	formID, err := decodeFormID(t)
	if err != nil {
		return err
	}

	_, err = h.store.FindFormByID(ctx, formID)
	if err == nil {
		log.Println("⚠️ Form still exists, skipping purge:", formID.Hex())
		return nil
	}
	if !errors.Is(err, models.ErrFormNotFound) {
		return err
	}

	deleted, err := h.store.DeleteResponsesByForm(ctx, formID)
	if err != nil {
		log.Println("❌ Failed to purge responses:", err)
		return err
	}
	if deleted > 0 {
		log.Printf("✅ Purged %d orphaned responses of form %s", deleted, formID.Hex())
	}
	return nil
}

// HandleReviewNotify mails the creating teacher about the review decision.
func (h *Handlers) HandleReviewNotify(ctx context.Context, t *asynq.Task) error {
	formID, err := decodeFormID(t)
	if err != nil {
		return err
	}

	form, err := h.store.FindFormByID(ctx, formID)
	if errors.Is(err, models.ErrFormNotFound) {
		log.Println("⚠️ Form not found. Possibly deleted. Skipping task:", formID.Hex())
		return nil
	}
	if err != nil {
		return err
	}
	if form.ApprovalStatus == models.ApprovalPending {
		return nil
	}

	teacher, err := h.store.FindAccountByID(ctx, form.CreatedBy)
	if errors.Is(err, models.ErrAccountNotFound) {
		log.Println("⚠️ Form creator not found, skipping review mail:", form.CreatedBy.Hex())
		return nil
	}
	if err != nil {
		return err
	}

	data := notifications.NewReviewEmailData(teacher, form, forms.ShareLink(h.baseURL, form.ID))
	html, err := notifications.RenderReviewEmailHTML(data)
	if err != nil {
		return fmt.Errorf("render review mail: %v: %w", err, asynq.SkipRetry)
	}

	if h.mailer == nil {
		log.Printf("⚠️ SMTP not configured, review mail to %s not sent", teacher.Email)
		return nil
	}
	if err := h.mailer.Send(teacher.Email, notifications.ReviewEmailSubject(data), html); err != nil {
		log.Println("❌ Failed to send review mail:", err)
		return err
	}
	log.Printf("✅ Review mail sent to %s for form %s", teacher.Email, form.ID.Hex())
	return nil
}

// NewServeMux registers every task handler.
func NewServeMux(h *Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePurgeResponses, h.HandlePurgeResponses)
	mux.HandleFunc(TypeReviewNotify, h.HandleReviewNotify)
	return mux
}

// StartWorker runs the asynq server in the background; call Shutdown on the result to stop it.
func StartWorker(redisAddr string, mux *asynq.ServeMux) (*asynq.Server, error) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: 5},
	)
	if err := srv.Start(mux); err != nil {
		return nil, err
	}
	log.Println("✅ Asynq worker started")
	return srv, nil
}
