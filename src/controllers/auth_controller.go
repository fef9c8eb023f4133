package controllers

import (
	"log"
	"time"

	"Backend-Feedback/src/middleware"
	"Backend-Feedback/src/models"
	"Backend-Feedback/src/services/accounts"
	"Backend-Feedback/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	accounts     *accounts.Service
	jwt          *utils.JWTManager
	blacklist    *utils.TokenBlacklist
	cookieSecure bool
}

func NewAuthController(accounts *accounts.Service, jwt *utils.JWTManager, blacklist *utils.TokenBlacklist, cookieSecure bool) *AuthController {
	return &AuthController{accounts: accounts, jwt: jwt, blacklist: blacklist, cookieSecure: cookieSecure}
}

// Login godoc
// @Summary Log in
// @Description Authenticate an admin or teacher and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginDto true "Email and password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var dto models.LoginDto
	if err := parseBody(c, &dto); err != nil {
		return err
	}

	account, err := ac.accounts.Authenticate(c.Context(), dto.Email, dto.Password)
	if err != nil {
		log.Printf("⚠️ Failed login for %s from %s", dto.Email, c.IP())
		return err
	}

	token, expiresAt, err := ac.jwt.GenerateJWT(account.ID.Hex(), account.Email, account.Role)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   ac.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")

	return c.JSON(fiber.Map{
		"message":   "Login successful",
		"token":     token,
		"expiresAt": expiresAt,
		"user":      account,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revoke the current session token and clear the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	token, expiresAt := middleware.SessionToken(c)
	if token != "" {
		if err := ac.blacklist.Add(c.Context(), token, time.Until(expiresAt)); err != nil {
			log.Println("❌ Failed to blacklist token:", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   ac.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// Me godoc
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} models.Account
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (ac *AuthController) Me(c *fiber.Ctx) error {
	account, err := ac.accounts.GetAccount(c.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(account)
}
