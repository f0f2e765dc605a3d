package forecast

import (
	"fmt"
	"time"

	"foodshare-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainOptions struct {
	ModelDir         string
	PartitionByOwner bool
}

type TrainResult struct {
	RunID     string
	Rows      int // eşleşmiş gün sayısı
	Samples   int // kaydırmadan sonra kalan satır
	Paths     []string
	TrainedAt time.Time
}

// TrainModels geçmiş satırlardan üç modeli eğitir. Veri yetersizse ErrInsufficientData döner.
func TrainModels(rows []DayFeatures, partitionByOwner bool) (ModelSet, int, error) {
	if len(rows) < MinTrainingRows {
		return nil, 0, fmt.Errorf("%w: %d gün var, en az %d gerekli", ErrInsufficientData, len(rows), MinTrainingRows)
	}

	samples := BuildSamples(rows, partitionByOwner)
	n := len(samples[models.DishDal])
	if n == 0 {
		return nil, 0, fmt.Errorf("%w: kaydırmadan sonra satır kalmadı", ErrInsufficientData)
	}

	runID := uuid.NewString()
	now := time.Now().UTC()

	set := make(ModelSet, len(models.Dishes))
	for _, d := range models.Dishes {
		X := make([][]float64, 0, len(samples[d]))
		y := make([]float64, 0, len(samples[d]))
		for _, s := range samples[d] {
			X = append(X, s.X)
			y = append(y, s.Y)
		}

		intercept, coef, err := Fit(X, y)
		if err != nil {
			return nil, 0, fmt.Errorf("%s modeli eğitilemedi: %w", d, err)
		}
		set[d] = &Model{
			Dish:         d,
			Features:     append([]string(nil), FeatureNames...),
			Intercept:    intercept,
			Coefficients: coef,
			Samples:      len(y),
			RunID:        runID,
			TrainedAt:    now,
		}
	}
	return set, n, nil
}

// Train geçmişi toplar, modelleri eğitir ve diske yazar. Veri yetersizse hiçbir dosya yazılmaz.
func Train(db *gorm.DB, opts TrainOptions) (*TrainResult, error) {
	rows, err := AssembleHistory(db)
	if err != nil {
		return nil, fmt.Errorf("geçmiş veriler okunamadı: %w", err)
	}

	set, n, err := TrainModels(rows, opts.PartitionByOwner)
	if err != nil {
		return nil, err
	}

	paths, err := SaveModels(opts.ModelDir, set)
	if err != nil {
		return nil, err
	}

	dal := set[models.DishDal]
	return &TrainResult{
		RunID:     dal.RunID,
		Rows:      len(rows),
		Samples:   n,
		Paths:     paths,
		TrainedAt: dal.TrainedAt,
	}, nil
}
