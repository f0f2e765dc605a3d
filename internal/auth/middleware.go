package auth

import (
	"fmt"
	"strings"

	"foodshare-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"

	// CookieName tarayıcı oturumu için token çerezinin adı
	CookieName = "token"
)

// JWTMiddleware token'ı önce Authorization başlığında, yoksa çerezde arar.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, err := tokenFromRequest(c)
		if err != nil {
			return err
		}

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUsernameKey, claims.Username)

		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if cookie := c.Cookies(CookieName); cookie != "" {
			return cookie, nil
		}
		return "", fiber.NewError(fiber.StatusUnauthorized, "Giriş yapmanız gerekiyor")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
	}
	return parts[1], nil
}

// CurrentUserID middleware'in yazdığı kullanıcı id'sini okur.
func CurrentUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok || userID == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bilgisi alınamadı")
	}
	return userID, nil
}

// CurrentUsername audit loglarında kullanılan kullanıcı adını okur.
func CurrentUsername(c *fiber.Ctx) string {
	name, _ := c.Locals(CtxUsernameKey).(string)
	return name
}
