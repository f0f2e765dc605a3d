package audit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/models"
	"foodshare-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStoresJSONSnapshots(t *testing.T) {
	db := testutil.NewDB(t)

	err := Write(db, 7, "dhaba", Entry{
		EntityType:  EntityRequest,
		EntityID:    3,
		Action:      models.AuditActionUpdate,
		Description: "Talep kabul edildi",
		Before:      map[string]string{"status": "pending"},
		After:       map[string]string{"status": "accepted"},
	})
	require.NoError(t, err)

	var l models.AuditLog
	require.NoError(t, db.First(&l).Error)
	assert.EqualValues(t, 7, l.UserID)
	assert.Equal(t, "dhaba", l.UserName)
	assert.Equal(t, `{"status":"pending"}`, l.BeforeData)
	assert.Equal(t, `{"status":"accepted"}`, l.AfterData)
	assert.Equal(t, models.AuditActionUpdate, l.Action)
}

func TestWriteNilSnapshotsAreJSONNull(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, Write(db, 1, "", Entry{EntityType: EntityPlanned, Action: models.AuditActionCreate}))

	var l models.AuditLog
	require.NoError(t, db.First(&l).Error)
	assert.Equal(t, "null", l.BeforeData)
	assert.Equal(t, "null", l.AfterData)
}

func TestRecordTakesOwnerFromRequest(t *testing.T) {
	db := testutil.NewDB(t)

	app := fiber.New()
	app.Post("/signed-in", func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, uint(42))
		c.Locals(auth.CtxUsernameKey, "tandoor")
		Record(c, Entry{EntityType: EntityCloseDay, EntityID: 9, Action: models.AuditActionCreate})
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Post("/anonymous", func(c *fiber.Ctx) error {
		Record(c, Entry{EntityType: EntityCloseDay, EntityID: 10, Action: models.AuditActionCreate})
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, path := range []string{"/signed-in", "/anonymous"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.EqualValues(t, 42, logs[0].UserID)
	assert.Equal(t, "tandoor", logs[0].UserName)
	assert.Equal(t, EntityCloseDay, logs[0].EntityType)
	assert.EqualValues(t, 9, logs[0].EntityID)
}
