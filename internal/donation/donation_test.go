package donation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"foodshare-backend/internal/models"
	"foodshare-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

func TestListingExcludesRestaurantWithNothingLeft(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateOwner(t, db, "dhaba")

	require.NoError(t, db.Create(&models.PlannedEntry{UserID: u.ID, Date: today, DalQty: 10}).Error)
	closed := models.CloseDayEntry{UserID: u.ID, Date: today, SoldDalQty: 10}
	require.NoError(t, db.Create(&closed).Error)

	listings, err := TodayListings(db, today)
	require.NoError(t, err)
	assert.Empty(t, listings)

	require.NoError(t, db.Model(&closed).Update("sold_dal_qty", 6).Error)

	listings, err = TodayListings(db, today)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "dhaba", listings[0].Restaurant)
	assert.Equal(t, 4, listings[0].Dal)
	assert.Equal(t, 0, listings[0].Chawal)
	assert.Equal(t, 0, listings[0].Sabji)
}

func TestListingOmitsUnclosedAndOtherDays(t *testing.T) {
	db := testutil.NewDB(t)
	open := testutil.CreateOwner(t, db, "open-kitchen")
	yesterday := testutil.CreateOwner(t, db, "yesterday")

	// Kapanış yok: zayiat bilinmiyor
	require.NoError(t, db.Create(&models.PlannedEntry{UserID: open.ID, Date: today, DalQty: 10}).Error)

	// Dünün artığı bugün listelenmez
	require.NoError(t, db.Create(&models.PlannedEntry{UserID: yesterday.ID, Date: today.AddDate(0, 0, -1), DalQty: 10}).Error)
	require.NoError(t, db.Create(&models.CloseDayEntry{UserID: yesterday.ID, Date: today.AddDate(0, 0, -1), SoldDalQty: 2}).Error)

	listings, err := TodayListings(db, today)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestRequestLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateOwner(t, db, "dhaba")
	other := testutil.CreateOwner(t, db, "other")

	req, err := CreateRequest(db, owner.ID, NewRequestInput{Name: " Asha ", Phone: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, "Asha", req.RequesterName)

	// Başka restoranın sahibi: bulunamadı, durum değişmez
	_, _, err = Decide(db, req.ID, other.ID, models.RequestRejected)
	assert.True(t, errors.Is(err, ErrRequestNotFound))

	got, err := GetRequest(db, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, got.Status)

	prev, updated, err := Decide(db, req.ID, owner.ID, models.RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, prev)
	assert.Equal(t, models.RequestAccepted, updated.Status)

	// Kabul edilen talep tekrar reddedilemez
	prev, _, err = Decide(db, req.ID, owner.ID, models.RequestRejected)
	assert.True(t, errors.Is(err, ErrAlreadyDecided))
	assert.Equal(t, models.RequestAccepted, prev)

	got, err = GetRequest(db, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, got.Status)
	assert.Equal(t, "dhaba", got.Restaurant.Username)
}

func TestCreateRequestValidation(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateOwner(t, db, "dhaba")

	_, err := CreateRequest(db, owner.ID, NewRequestInput{Name: "", Phone: "123"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = CreateRequest(db, owner.ID, NewRequestInput{Name: "Asha", Phone: "1234567890123456"})
	assert.True(t, errors.Is(err, ErrInputTooLong))

	_, err = CreateRequest(db, owner.ID, NewRequestInput{Name: strings.Repeat("a", 101), Phone: "123"})
	assert.True(t, errors.Is(err, ErrInputTooLong))
}

func TestCreateRequestCountsCharactersNotBytes(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateOwner(t, db, "dhaba")

	// 45 karakter, 135 bayt
	name := strings.Repeat("राम", 15)
	req, err := CreateRequest(db, owner.ID, NewRequestInput{Name: name, Phone: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, name, req.RequesterName)

	_, err = CreateRequest(db, owner.ID, NewRequestInput{Name: strings.Repeat("र", 100), Phone: "9876543210"})
	assert.NoError(t, err)

	_, err = CreateRequest(db, owner.ID, NewRequestInput{Name: strings.Repeat("र", 101), Phone: "9876543210"})
	assert.True(t, errors.Is(err, ErrInputTooLong))
}

func TestDeleteRequestsAreOwnerScoped(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateOwner(t, db, "dhaba")
	other := testutil.CreateOwner(t, db, "other")

	a, err := CreateRequest(db, owner.ID, NewRequestInput{Name: "A", Phone: "1"})
	require.NoError(t, err)
	_, err = CreateRequest(db, owner.ID, NewRequestInput{Name: "B", Phone: "2"})
	require.NoError(t, err)
	c, err := CreateRequest(db, other.ID, NewRequestInput{Name: "C", Phone: "3"})
	require.NoError(t, err)

	_, err = DeleteRequest(db, c.ID, owner.ID)
	assert.True(t, errors.Is(err, ErrRequestNotFound))

	_, err = DeleteRequest(db, a.ID, owner.ID)
	require.NoError(t, err)

	n, err := DeleteAllRequests(db, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	remaining, err := ListForOwner(db, other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	mine, err := ListForOwner(db, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
