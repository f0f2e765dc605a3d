package dashboard

import (
	"fmt"
	"sort"
	"time"

	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type WasteChartPoint struct {
	Label  string `json:"label"` // gün / hafta başlangıcı / ay başlangıcı
	Dal    int    `json:"dal"`
	Chawal int    `json:"chawal"`
	Sabji  int    `json:"sabji"`
	Total  int    `json:"total"`
}

type WasteChartResponse struct {
	Period      string            `json:"period"` // daily | weekly | monthly
	From        string            `json:"from"`
	To          string            `json:"to"`
	Points      []WasteChartPoint `json:"points"`
	GrandTotals WasteChartPoint   `json:"grand_totals"`
}

// chartRange period ve count'a göre [start, end] gün aralığını döner.
func chartRange(period string, count int, today time.Time) (string, time.Time, time.Time) {
	end := today
	var start time.Time

	switch period {
	case "weekly":
		// count hafta geriye, Pazartesi başlangıçlı
		start = weekStart(today).AddDate(0, 0, -7*(count-1))
	case "monthly":
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(count - 1), 0)
	default:
		period = "daily"
		start = today.AddDate(0, 0, -(count - 1))
	}
	return period, start, end
}

func weekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -models.Weekday(day))
}

func bucketOf(period string, day time.Time) time.Time {
	day = day.UTC()
	switch period {
	case "weekly":
		return weekStart(day)
	case "monthly":
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// BuildWasteChart kapanış kayıtlarını periyoda göre toplar. Zayiatı olmayan
// periyotlar da sıfır olarak döner ki grafik boşluksuz çizilsin.
func BuildWasteChart(closed []models.CloseDayEntry, period string, start, end time.Time) WasteChartResponse {
	buckets := make(map[time.Time]*WasteChartPoint)
	for b := bucketOf(period, start); !b.After(end); {
		buckets[b] = &WasteChartPoint{Label: b.Format("2006-01-02")}
		switch period {
		case "weekly":
			b = b.AddDate(0, 0, 7)
		case "monthly":
			b = b.AddDate(0, 1, 0)
		default:
			b = b.AddDate(0, 0, 1)
		}
	}

	for _, c := range closed {
		p, ok := buckets[bucketOf(period, c.Date)]
		if !ok {
			continue
		}
		p.Dal += c.DalWaste
		p.Chawal += c.ChawalWaste
		p.Sabji += c.SabjiWaste
	}

	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	resp := WasteChartResponse{
		Period: period,
		From:   start.Format("2006-01-02"),
		To:     end.Format("2006-01-02"),
		Points: make([]WasteChartPoint, 0, len(keys)),
	}
	for _, k := range keys {
		p := buckets[k]
		p.Total = p.Dal + p.Chawal + p.Sabji
		resp.Points = append(resp.Points, *p)

		resp.GrandTotals.Dal += p.Dal
		resp.GrandTotals.Chawal += p.Chawal
		resp.GrandTotals.Sabji += p.Sabji
		resp.GrandTotals.Total += p.Total
	}
	resp.GrandTotals.Label = "total"
	return resp
}

// GET /dashboard/waste-chart?period=daily&count=7
func WasteChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 || count > 366 {
				return fiber.NewError(fiber.StatusBadRequest, "count geçersiz")
			}
		}

		period, start, end := chartRange(period, count, models.Today())

		var closed []models.CloseDayEntry
		if err := database.DB.
			Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
			Find(&closed).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		return c.JSON(BuildWasteChart(closed, period, start, end))
	}
}
