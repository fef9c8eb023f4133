package forms

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"Backend-Feedback/src/models"
	"Backend-Feedback/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store interface {
	InsertForm(ctx context.Context, form *models.Form) error
	FindFormByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error)
	ListForms(ctx context.Context, filter models.FormFilter) ([]models.Form, error)
	UpdateForm(ctx context.Context, form *models.Form) error
	// DeleteFormCascade removes the form and every response that references it.
	DeleteFormCascade(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type AccountLookup interface {
	FindAccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
}

// Events receives lifecycle notifications; implementations must not block the request.
type Events interface {
	FormReviewed(ctx context.Context, form *models.Form)
	FormDeleted(ctx context.Context, formID primitive.ObjectID)
}

type noEvents struct{}

func (noEvents) FormReviewed(context.Context, *models.Form)      {}
func (noEvents) FormDeleted(context.Context, primitive.ObjectID) {}

type Service struct {
	store    Store
	accounts AccountLookup
	events   Events
	now      func() time.Time
}

func NewService(store Store, accounts AccountLookup, events Events) *Service {
	if events == nil {
		events = noEvents{}
	}
	return &Service{
		store:    store,
		accounts: accounts,
		events:   events,
		now:      time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateForm stores a new form. Admin forms start approved and must name a teacher;
// teacher forms start pending and are assigned on approval.
func (s *Service) CreateForm(ctx context.Context, user *models.CurrentUser, dto *models.FormDto) (*models.Form, error) {
	if user == nil {
		return nil, utils.Unauthorized("Not authenticated")
	}

	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, utils.BadRequest("Title is required")
	}
	questions, err := BuildQuestions(dto.Questions)
	if err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}

	now := s.now()
	form := &models.Form{
		ID:             primitive.NewObjectID(),
		Title:          title,
		Description:    strings.TrimSpace(dto.Description),
		Questions:      questions,
		CreatedBy:      user.ID,
		AllowedBatches: NormalizeBatches(dto.AllowedBatches),
		IsActive:       true,
		ApprovalStatus: InitialStatus(user.Role),
		CreatedByRole:  user.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if user.IsAdmin() {
		teacherID, err := s.resolveTeacher(ctx, dto.AssignedTo)
		if err != nil {
			return nil, err
		}
		form.AssignedTo = &teacherID
		form.ApprovedBy = &user.ID
		form.ApprovedAt = &now
	}

	if err := s.store.InsertForm(ctx, form); err != nil {
		return nil, err
	}

	log.Printf("✅ Form %s created by %s (%s)", form.ID.Hex(), user.Email, form.ApprovalStatus)
	return form, nil
}

func (s *Service) resolveTeacher(ctx context.Context, raw string) (primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return primitive.NilObjectID, utils.BadRequest("assignedTo is required")
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, utils.BadRequest("Invalid assignedTo ID")
	}

	account, err := s.accounts.FindAccountByID(ctx, id)
	if errors.Is(err, models.ErrAccountNotFound) {
		return primitive.NilObjectID, utils.NotFound("Teacher not found")
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	if account.Role != models.RoleTeacher || !account.IsActive {
		return primitive.NilObjectID, utils.NotFound("Teacher not found")
	}
	return account.ID, nil
}

// ListForms: admins see every form, teachers what they created or were assigned.
func (s *Service) ListForms(ctx context.Context, user *models.CurrentUser) ([]models.Form, error) {
	if user == nil {
		return nil, utils.Unauthorized("Not authenticated")
	}
	filter := models.FormFilter{}
	if !user.IsAdmin() {
		filter.VisibleTo = &user.ID
	}
	return s.store.ListForms(ctx, filter)
}

func (s *Service) load(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	form, err := s.store.FindFormByID(ctx, id)
	if errors.Is(err, models.ErrFormNotFound) {
		return nil, utils.NotFound("Form not found")
	}
	return form, err
}

// GetForm returns the full form to staff allowed to view it.
func (s *Service) GetForm(ctx context.Context, user *models.CurrentUser, id primitive.ObjectID) (*models.Form, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(user, form) {
		return nil, utils.Forbidden("You do not have access to this form")
	}
	return form, nil
}

// GetPublicForm serves the fill page: only approved, active forms are reachable.
func (s *Service) GetPublicForm(ctx context.Context, id primitive.ObjectID) (*models.PublicForm, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !form.IsFillable() {
		return nil, utils.NotFound("Form not found or not accepting responses")
	}
	public := form.Public()
	return &public, nil
}

// UpdateForm replaces the editable content. The approval state is left untouched.
func (s *Service) UpdateForm(ctx context.Context, user *models.CurrentUser, id primitive.ObjectID, dto *models.FormDto) (*models.Form, error) {
	if !user.IsAdmin() {
		return nil, utils.Forbidden("Only admins can edit forms")
	}
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, utils.BadRequest("Title is required")
	}
	questions, err := BuildQuestions(dto.Questions)
	if err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}

	form.Title = title
	form.Description = strings.TrimSpace(dto.Description)
	form.Questions = questions
	form.AllowedBatches = NormalizeBatches(dto.AllowedBatches)
	if strings.TrimSpace(dto.AssignedTo) != "" {
		teacherID, err := s.resolveTeacher(ctx, dto.AssignedTo)
		if err != nil {
			return nil, err
		}
		form.AssignedTo = &teacherID
	}
	form.UpdatedAt = s.now()

	if err := s.store.UpdateForm(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// DeleteForm removes the form and its responses, returning how many responses went with it.
func (s *Service) DeleteForm(ctx context.Context, user *models.CurrentUser, id primitive.ObjectID) (int64, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	if !CanManage(user, form) {
		return 0, utils.Forbidden("Only admins or the assigned teacher can delete this form")
	}

	deleted, err := s.store.DeleteFormCascade(ctx, id)
	if errors.Is(err, models.ErrFormNotFound) {
		return 0, utils.NotFound("Form not found")
	}
	if err != nil {
		return 0, err
	}

	log.Printf("🗑️ Form %s deleted with %d responses", id.Hex(), deleted)
	s.events.FormDeleted(ctx, id)
	return deleted, nil
}

func (s *Service) ToggleStatus(ctx context.Context, user *models.CurrentUser, id primitive.ObjectID) (*models.Form, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanManage(user, form) {
		return nil, utils.Forbidden("Only admins or the assigned teacher can change this form's status")
	}

	form.IsActive = !form.IsActive
	form.UpdatedAt = s.now()
	if err := s.store.UpdateForm(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *Service) Approve(ctx context.Context, user *models.CurrentUser, id primitive.ObjectID) (*models.Form, error) {
	return s.review(ctx, user, id, ActionApprove, "")
}

func (s *Service) Reject(ctx context.Context, user *models.CurrentUser, id primitive.ObjectID, reason string) (*models.Form, error) {
	return s.review(ctx, user, id, ActionReject, reason)
}

func (s *Service) review(ctx context.Context, user *models.CurrentUser, id primitive.ObjectID, action ReviewAction, reason string) (*models.Form, error) {
	if !user.IsAdmin() {
		return nil, utils.Forbidden("Only admins can review forms")
	}
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyReview(form, action, user.ID, reason, s.now()); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	if err := s.store.UpdateForm(ctx, form); err != nil {
		return nil, err
	}

	log.Printf("✅ Form %s %s by %s", form.ID.Hex(), form.ApprovalStatus, user.Email)
	s.events.FormReviewed(ctx, form)
	return form, nil
}

// ShareLink is the public fill URL encoded in QR codes.
func ShareLink(baseURL string, id primitive.ObjectID) string {
	return fmt.Sprintf("%s/fill/%s", strings.TrimRight(baseURL, "/"), id.Hex())
}
