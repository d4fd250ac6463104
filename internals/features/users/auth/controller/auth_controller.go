package controller

import (
	"errors"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/configs"
	"gerejaku_backend/internals/features/users/auth/service"
	"gerejaku_backend/internals/features/users/user/dto"
	"gerejaku_backend/internals/features/users/user/model"
	helper "gerejaku_backend/internals/helpers"
)

var validate = validator.New()

type RegisterRequest struct {
	UserName     string `json:"user_name" validate:"required,min=3,max=255"`
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ctrl *AuthController) respondWithToken(c *fiber.Ctx, user *model.UserModel) error {
	token, err := service.IssueAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": token,
		"user":         dto.ToUserResponse(user),
	})
}

// 🟢 POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := service.HashPassword(req.UserPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := model.UserModel{
		UserName:     strings.TrimSpace(req.UserName),
		UserEmail:    strings.ToLower(strings.TrimSpace(req.UserEmail)),
		UserPassword: hash,
		UserRole:     "user",
		UserIsActive: true,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return helper.JsonCreated(c, "Registrasi berhasil", dto.ToUserResponse(&user))
}

// 🟢 POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := service.Login(ctrl.DB.WithContext(c.Context()), req.UserEmail, req.UserPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		case errors.Is(err, service.ErrUserInactive):
			return helper.JsonError(c, fiber.StatusForbidden, service.ErrUserInactive.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
		}
	}

	return ctrl.respondWithToken(c, user)
}

// 🟢 POST /api/auth/login-google
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token wajib diisi")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google ID Token tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca ID Token")
	}

	user, err := service.FindOrCreateGoogleUser(ctrl.DB.WithContext(c.Context()), claimSet.Sub, claimSet.Email, claimSet.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserInactive) {
			return helper.JsonError(c, fiber.StatusForbidden, service.ErrUserInactive.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login Google")
	}

	return ctrl.respondWithToken(c, user)
}

// 🟢 GET /api/u/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil")
	}

	return helper.JsonOK(c, "Profil berhasil diambil", dto.ToUserResponse(&user))
}
