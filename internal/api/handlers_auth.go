package api

import (
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/aluna-health/aluna/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	authCookieName  = "aluna_token"
	authTokenTTL    = 24 * time.Hour
	minPasswordSize = 8

	userIDContextKey = "user_id"
	roleContextKey   = "role"
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	payload := credentialsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := normalizeEmail(payload.Email)
	if email == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid email")
	}
	if len(payload.Password) < minPasswordSize {
		return apiError(c, fiber.StatusBadRequest, "password too short")
	}

	_, exists, err := handler.repos.Users.FindByEmail(email)
	if err != nil {
		handler.logger.Error("register lookup failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleOwner,
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		handler.logger.Error("register create failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	payload := credentialsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, found, err := handler.repos.Users.FindByEmail(normalizeEmail(payload.Email))
	if err != nil {
		handler.logger.Error("login lookup failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	if !found {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	return c.JSON(user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.JSON(fiber.Map{"status": "ok"})
}

// RequireAuth accepts the auth cookie or a bearer token and stores the user
// identity on the request context.
func (handler *Handler) RequireAuth(c *fiber.Ctx) error {
	raw := c.Cookies(authCookieName)
	if raw == "" {
		header := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			raw = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if raw == "" {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	claims := authClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return apiError(c, fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals(userIDContextKey, claims.UserID)
	c.Locals(roleContextKey, claims.Role)
	return c.Next()
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, user *models.User) error {
	now := time.Now()
	claims := authClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(authTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  now.Add(authTokenTTL),
	})
	return nil
}

func currentUserID(c *fiber.Ctx) uint {
	if userID, ok := c.Locals(userIDContextKey).(uint); ok {
		return userID
	}
	return 0
}

func normalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}
