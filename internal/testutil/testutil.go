// Package testutil paket testlerinin ortak kurulum yardımcıları.
package testutil

import (
	"fmt"
	"testing"

	"foodshare-backend/internal/database"
	"foodshare-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const Password = "gizli-sifre-123"

// NewDB her test için ayrı bir bellek içi SQLite veritabanı açar, migrate eder
// ve database.DB'ye atar.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sqlite açılamadı: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate başarısız: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateOwner(t testing.TB, db *gorm.DB, username string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash üretilemedi: %v", err)
	}
	u := models.User{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("kullanıcı oluşturulamadı: %v", err)
	}
	return u
}
