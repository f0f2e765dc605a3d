package dashboard

import (
	"fmt"
	"time"

	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const reportSheet = "Sheet1"

var reportHeader = []interface{}{
	"Tarih", "Gün",
	"Dal planlanan", "Dal satılan", "Dal zayiat",
	"Chawal planlanan", "Chawal satılan", "Chawal zayiat",
	"Sabji planlanan", "Sabji satılan", "Sabji zayiat",
	"Toplam zayiat",
}

var dayNames = []string{"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi", "Pazar"}

// BuildWasteReport [from, to] aralığındaki kapanmış günleri Excel dosyasına yazar.
func BuildWasteReport(db *gorm.DB, userID uint, from, to time.Time) (*excelize.File, error) {
	var closed []models.CloseDayEntry
	if err := db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").Find(&closed).Error; err != nil {
		return nil, err
	}

	var planned []models.PlannedEntry
	if err := db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("id ASC").Find(&planned).Error; err != nil {
		return nil, err
	}
	plannedByDay := make(map[string]models.PlannedEntry, len(planned))
	for _, p := range planned {
		plannedByDay[models.DayKey(p.Date)] = p
	}

	f := excelize.NewFile()
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		f.Close()
		return nil, err
	}

	total := 0
	for i, c := range closed {
		p := plannedByDay[models.DayKey(c.Date)]
		dayWaste := c.DalWaste + c.ChawalWaste + c.SabjiWaste
		total += dayWaste

		row := []interface{}{
			models.DayKey(c.Date), dayNames[models.Weekday(c.Date)],
			p.DalQty, c.SoldDalQty, c.DalWaste,
			p.ChawalQty, c.SoldChawalQty, c.ChawalWaste,
			p.SabjiQty, c.SoldSabjiQty, c.SabjiWaste,
			dayWaste,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	totalCell, _ := excelize.CoordinatesToCellName(len(reportHeader)-1, len(closed)+2)
	sumCell, _ := excelize.CoordinatesToCellName(len(reportHeader), len(closed)+2)
	if err := f.SetCellValue(reportSheet, totalCell, "TOPLAM"); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellValue(reportSheet, sumCell, total); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// GET /dashboard/waste-report.xlsx?date_from=2025-01-01&date_to=2025-01-31
// Varsayılan aralık son 30 gün.
func WasteReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		to := models.Today()
		from := to.AddDate(0, 0, -29)
		if s := c.Query("date_from"); s != "" {
			d, err := models.ParseDay(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			from = d
		}
		if s := c.Query("date_to"); s != "" {
			d, err := models.ParseDay(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			to = d
		}
		if to.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "date_to, date_from'dan önce olamaz")
		}

		f, err := BuildWasteReport(database.DB, userID, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor yazılamadı")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="zayiat_%s_%s.xlsx"`, models.DayKey(from), models.DayKey(to)))
		return c.Send(buf.Bytes())
	}
}
