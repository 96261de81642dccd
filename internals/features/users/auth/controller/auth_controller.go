// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"zupsms_backend/internals/configs"
	dto "zupsms_backend/internals/features/users/auth/dto"
	authHelper "zupsms_backend/internals/features/users/auth/helper"
	model "zupsms_backend/internals/features/users/auth/model"
	authService "zupsms_backend/internals/features/users/auth/service"
	helper "zupsms_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB, v *validator.Validate) *AuthController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &AuthController{DB: db, Validate: v}
}

// Register: POST /auth/register. création du compte coordinateur
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserEmail:        strings.ToLower(strings.TrimSpace(req.Email)),
		UserPasswordHash: hash,
	}
	if err := ctl.DB.Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	return helper.JsonCreated(c, "User registered", dto.FromModel(user))
}

// Login: POST /auth/login. token dans le body et en cookie httpOnly
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	err := ctl.DB.First(&user, "user_email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// même message que mot de passe faux, pas d'oracle sur les emails
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	if err := authHelper.CheckPasswordHash(user.UserPasswordHash, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return ctl.issueToken(c, user)
}

// LoginGoogle: POST /auth/login-google. compte auto-créé au premier login
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusNotImplemented, "Google login is not configured")
	}

	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	if email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token has no email")
	}

	var user model.UserModel
	err = ctl.DB.First(&user, "user_email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, herr := authHelper.HashPassword(randomPassword())
		if herr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
		user = model.UserModel{UserEmail: email, UserPasswordHash: hash}
		if cerr := ctl.DB.Create(&user).Error; cerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	return ctl.issueToken(c, user)
}

// ListUsers: GET /api/users. comptes coordinateurs (jamais le hash)
func (ctl *AuthController) ListUsers(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctl.DB.Order("user_created_at ASC").Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	return helper.JsonOK(c, "OK", dto.FromModels(users))
}

// Me: GET /api/auth/me. repose sur les locals posés par le middleware
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	idStr, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user model.UserModel
	if err := ctl.DB.First(&user, "user_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	return helper.JsonOK(c, "OK", dto.FromModel(user))
}

// Logout: POST /api/auth/logout. on efface juste le cookie
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.JsonOK(c, "Logged out", nil)
}

func (ctl *AuthController) issueToken(c *fiber.Ctx, user model.UserModel) error {
	token, err := authService.CreateAccessToken(user.UserID, user.UserEmail)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(authService.AccessTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		User:        dto.FromModel(user),
	})
}

func randomPassword() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
