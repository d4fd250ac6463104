package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gerejaku_backend/internals/configs"
	"gerejaku_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrUserInactive       = errors.New("akun dinonaktifkan")
)

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// randomPassword untuk akun yang dibuat via Google (tidak pernah dipakai login).
func randomPassword() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// IssueAccessToken: JWT HS256 dengan claim id/user_name/role, TTL 24 jam.
func IssueAccessToken(user *model.UserModel) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Login email+password.
func Login(db *gorm.DB, email, password string) (*model.UserModel, error) {
	var user model.UserModel
	if err := db.First(&user, "LOWER(user_email) = LOWER(?)", strings.TrimSpace(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(user.UserPassword, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.UserIsActive {
		return nil, ErrUserInactive
	}
	return &user, nil
}

// FindOrCreateGoogleUser: cari by google_id, fallback by email (link akun),
// terakhir buat user baru.
func FindOrCreateGoogleUser(db *gorm.DB, googleID, email, name string) (*model.UserModel, error) {
	var user model.UserModel
	err := db.First(&user, "user_google_id = ?", googleID).Error
	if err == nil {
		if !user.UserIsActive {
			return nil, ErrUserInactive
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Link akun existing dengan email yang sama.
	err = db.First(&user, "LOWER(user_email) = LOWER(?)", email).Error
	if err == nil {
		if !user.UserIsActive {
			return nil, ErrUserInactive
		}
		user.UserGoogleID = &googleID
		if err := db.Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(randomPassword())
	if err != nil {
		return nil, err
	}
	newUser := model.UserModel{
		UserName:     name,
		UserEmail:    email,
		UserPassword: hash,
		UserGoogleID: &googleID,
		UserRole:     "user",
		UserIsActive: true,
	}
	if err := db.Create(&newUser).Error; err != nil {
		return nil, err
	}
	return &newUser, nil
}
