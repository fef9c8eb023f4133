package accounts

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"Backend-Feedback/src/models"
	"Backend-Feedback/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type Store interface {
	InsertAccount(ctx context.Context, account *models.Account) error
	FindAccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	ListAccounts(ctx context.Context, filter models.AccountFilter, params models.PaginationParams) ([]models.Account, int64, error)
}

type Service struct {
	store Store
	now   func() time.Time
	cost  int
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now, cost: bcrypt.DefaultCost}
}

// WithHashCost lowers the bcrypt cost, used by tests.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate checks the credentials. Unknown email and wrong password give the same 401.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.store.FindAccountByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, models.ErrAccountNotFound) {
		return nil, utils.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, utils.Unauthorized("Invalid email or password")
	}
	if !account.IsActive {
		return nil, utils.Forbidden("Account is deactivated")
	}
	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	account, err := s.store.FindAccountByID(ctx, id)
	if errors.Is(err, models.ErrAccountNotFound) {
		return nil, utils.NotFound("User not found")
	}
	return account, err
}

func (s *Service) CreateAccount(ctx context.Context, dto *models.CreateAccountDto) (*models.Account, error) {
	if !dto.Role.Valid() {
		return nil, utils.BadRequest("Invalid role")
	}
	fullName := strings.TrimSpace(dto.FullName)
	if fullName == "" {
		return nil, utils.BadRequest("fullName is required")
	}

	hash, err := s.hashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	account := &models.Account{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     normalizeEmail(dto.Email),
		Password:  hash,
		Role:      dto.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertAccount(ctx, account); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, utils.BadRequest("Email already exists")
		}
		return nil, err
	}

	log.Printf("✅ Account %s created (%s)", account.Email, account.Role)
	return account, nil
}

// UpdateAccount changes the fields that are set in dto. Role is fixed at creation.
func (s *Service) UpdateAccount(ctx context.Context, id primitive.ObjectID, dto *models.UpdateAccountDto) (*models.Account, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(dto.FullName); name != "" {
		account.FullName = name
	}
	if email := normalizeEmail(dto.Email); email != "" {
		account.Email = email
	}
	if dto.Password != "" {
		hash, err := s.hashPassword(dto.Password)
		if err != nil {
			return nil, err
		}
		account.Password = hash
	}
	account.UpdatedAt = s.now()

	if err := s.store.UpdateAccount(ctx, account); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, utils.BadRequest("Email already exists")
		}
		return nil, err
	}
	return account, nil
}

// ToggleStatus flips isActive. Admins cannot deactivate their own account.
func (s *Service) ToggleStatus(ctx context.Context, actor *models.CurrentUser, id primitive.ObjectID) (*models.Account, error) {
	if actor != nil && actor.ID == id {
		return nil, utils.BadRequest("You cannot change the status of your own account")
	}
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	account.IsActive = !account.IsActive
	account.UpdatedAt = s.now()
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	log.Printf("✅ Account %s active=%t", account.Email, account.IsActive)
	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context, role models.Role, params models.PaginationParams) ([]models.Account, int64, error) {
	if role != "" && !role.Valid() {
		return nil, 0, utils.BadRequest("Invalid role")
	}
	params.Normalize()
	switch params.SortBy {
	case "createdAt", "fullName", "email":
	default:
		params.SortBy = "createdAt"
	}
	return s.store.ListAccounts(ctx, models.AccountFilter{Role: role, Search: strings.TrimSpace(params.Search)}, params)
}

// ListTeachers returns every active teacher, for the assignment picker.
func (s *Service) ListTeachers(ctx context.Context) ([]models.Account, error) {
	teachers, _, err := s.store.ListAccounts(ctx,
		models.AccountFilter{Role: models.RoleTeacher, ActiveOnly: true},
		models.PaginationParams{SortBy: "fullName", Order: "asc"})
	return teachers, err
}

// EnsureAdmin creates the bootstrap admin when no account uses that email yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, fullName string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	_, err := s.store.FindAccountByEmail(ctx, email)
	if err == nil {
		log.Printf("✅ Admin %s already exists", email)
		return nil
	}
	if !errors.Is(err, models.ErrAccountNotFound) {
		return err
	}

	if strings.TrimSpace(fullName) == "" {
		fullName = "Administrator"
	}
	_, err = s.CreateAccount(ctx, &models.CreateAccountDto{
		FullName: fullName,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	return err
}
