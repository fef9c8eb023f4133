package middleware

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"Backend-Feedback/src/models"
	"Backend-Feedback/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TokenCookie = "token"

	localUser      = "user"
	localToken     = "token"
	localExpiresAt = "tokenExpiresAt"
)

type AccountLookup interface {
	FindAccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
}

// Auth resolves the session token into the current user.
type Auth struct {
	jwt       *utils.JWTManager
	blacklist *utils.TokenBlacklist
	accounts  AccountLookup
}

func NewAuth(jwt *utils.JWTManager, blacklist *utils.TokenBlacklist, accounts AccountLookup) *Auth {
	return &Auth{jwt: jwt, blacklist: blacklist, accounts: accounts}
}

// tokenFrom reads the HTTP-only cookie first, then a Bearer header.
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(TokenCookie); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func (a *Auth) resolve(c *fiber.Ctx) (*models.CurrentUser, error) {
	tokenStr := tokenFrom(c)
	if tokenStr == "" {
		return nil, utils.Unauthorized("Not authenticated")
	}

	claims, err := a.jwt.ParseJWT(tokenStr)
	if err != nil {
		return nil, utils.Unauthorized("Invalid or expired token")
	}

	revoked, err := a.blacklist.Contains(c.Context(), tokenStr)
	if err != nil {
		log.Println("⚠️ Blacklist check failed:", err)
	}
	if revoked {
		return nil, utils.Unauthorized("Token has been revoked")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, utils.Unauthorized("Invalid or expired token")
	}
	account, err := a.accounts.FindAccountByID(c.Context(), id)
	if errors.Is(err, models.ErrAccountNotFound) {
		return nil, utils.Unauthorized("User no longer exists")
	}
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, utils.Forbidden("Account is deactivated")
	}

	c.Locals(localToken, tokenStr)
	if claims.ExpiresAt != nil {
		c.Locals(localExpiresAt, claims.ExpiresAt.Time)
	}
	return &models.CurrentUser{ID: account.ID, Email: account.Email, Role: account.Role}, nil
}

// AuthJWT rejects the request unless it carries a valid session of an active account.
func (a *Auth) AuthJWT(c *fiber.Ctx) error {
	user, err := a.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(localUser, user)
	return c.Next()
}

// OptionalAuth attaches the current user when a valid session is present and never rejects.
func (a *Auth) OptionalAuth(c *fiber.Ctx) error {
	if tokenFrom(c) != "" {
		if user, err := a.resolve(c); err == nil {
			c.Locals(localUser, user)
		}
	}
	return c.Next()
}

// RequireRole must run after AuthJWT.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Unauthorized("Not authenticated")
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		return utils.Forbidden("Insufficient permissions")
	}
}

// CurrentUser returns nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.CurrentUser {
	user, _ := c.Locals(localUser).(*models.CurrentUser)
	return user
}

// SessionToken returns the raw token and its expiry for logout.
func SessionToken(c *fiber.Ctx) (string, time.Time) {
	token, _ := c.Locals(localToken).(string)
	expiresAt, _ := c.Locals(localExpiresAt).(time.Time)
	return token, expiresAt
}
