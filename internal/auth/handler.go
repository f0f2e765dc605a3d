package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"foodshare-backend/internal/config"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLen = 8
	maxUsernameLen = 150
)

type RegisterRequest struct {
	Username  string `json:"username" form:"username"`
	Password1 string `json:"password1" form:"password1"`
	Password2 string `json:"password2" form:"password2"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// GET /register
func RegisterFormHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"fields":              []string{"username", "password1", "password2"},
			"min_password_length": minPasswordLen,
		})
	}
}

// ValidateRegistration kayıt formunu kontrol eder, geçerliyse nil döner.
func ValidateRegistration(body RegisterRequest) error {
	if body.Username == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı zorunlu")
	}
	if utf8.RuneCountInString(body.Username) > maxUsernameLen {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Kullanıcı adı en fazla %d karakter olabilir", maxUsernameLen))
	}
	for _, r := range body.Username {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r)) {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı sadece harf, rakam ve @.+-_ içerebilir")
		}
	}
	if body.Password1 != body.Password2 {
		return fiber.NewError(fiber.StatusBadRequest, "Şifreler eşleşmiyor")
	}
	if len(body.Password1) < minPasswordLen {
		return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 8 karakter olmalıdır")
	}
	if strings.IndexFunc(body.Password1, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Şifre sadece rakamlardan oluşamaz")
	}
	return nil
}

// POST /register
// Yeni restoran sahibi kaydı; başarılıysa doğrudan giriş yapılmış sayılır.
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if err := ValidateRegistration(body); err != nil {
			return err
		}

		var count int64
		if err := database.DB.Model(&models.User{}).Where("username = ?", body.Username).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı adı kontrol edilemedi")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten alınmış")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password1), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Username:     body.Username,
			PasswordHash: string(hash),
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		token, err := issueSession(c, cfg, &user)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token": token,
			"user":  UserResponse{ID: user.ID, Username: user.Username},
		})
	}
}

// POST /login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı sorgulanamadı")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		token, err := issueSession(c, cfg, &user)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  UserResponse{ID: user.ID, Username: user.Username},
		})
	}
}

// GET|POST /logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.JSON(fiber.Map{"message": "Çıkış yapıldı"})
	}
}

// GET /me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		return c.JSON(UserResponse{ID: user.ID, Username: user.Username})
	}
}

func issueSession(c *fiber.Ctx, cfg *config.Config, user *models.User) (string, error) {
	token, err := GenerateToken(cfg.JWTSecret, user)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return token, nil
}
