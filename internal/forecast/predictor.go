package forecast

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"foodshare-backend/internal/models"

	"gorm.io/gorm"
)

// baselineFactor bugünkü satışın üzerine eklenen pay.
const baselineFactor = 1.1

// Prediction yarın için önerilen miktarlar.
type Prediction struct {
	Dal    int `json:"dal_pred"`
	Chawal int `json:"chawal_pred"`
	Sabji  int `json:"sabji_pred"`
}

func (p *Prediction) set(d models.Dish, v int) {
	switch d {
	case models.DishDal:
		p.Dal = v
	case models.DishChawal:
		p.Chawal = v
	case models.DishSabji:
		p.Sabji = v
	}
}

// Predictor süreç boyunca paylaşılan, salt okunur model seti. Reload tüm seti
// tek seferde değiştirir; devam eden istekler eski seti kullanmayı bitirir.
type Predictor struct {
	dir    string
	models atomic.Pointer[ModelSet]
}

// NewPredictor modelleri dir klasöründen yükler. Model dosyası eksikse hata döner.
func NewPredictor(dir string) (*Predictor, error) {
	p := &Predictor{dir: dir}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPredictorWithModels hazır model setiyle Predictor oluşturur. Reload bu durumda desteklenmez.
func NewPredictorWithModels(set ModelSet) (*Predictor, error) {
	for _, d := range models.Dishes {
		m, ok := set[d]
		if !ok || m == nil {
			return nil, fmt.Errorf("%s modeli eksik", d)
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
	}
	p := &Predictor{}
	p.models.Store(&set)
	return p, nil
}

// Reload model dosyalarını yeniden okur. Hata durumunda eldeki set korunur.
func (p *Predictor) Reload() error {
	if p.dir == "" {
		return errors.New("model klasörü tanımlı değil")
	}
	set, err := LoadModels(p.dir)
	if err != nil {
		return err
	}
	p.models.Store(&set)
	return nil
}

// Models şu an kullanılan set.
func (p *Predictor) Models() ModelSet {
	return *p.models.Load()
}

// Predict bir günün özelliklerinden tahmin üretir.
func (p *Predictor) Predict(df DayFeatures) Prediction {
	set := p.Models()

	var out Prediction
	for _, d := range models.Dishes {
		f := df.Dishes[d]
		raw := math.RoundToEven(set[d].Predict(f.Row()))
		out.set(d, ApplyFloor(raw, f.Sold))
	}
	return out
}

// PredictFor (kullanıcı, gün) için tahmin üretir. Planlanan ya da kapanış kaydı
// yoksa nil döner.
func (p *Predictor) PredictFor(db *gorm.DB, userID uint, day time.Time) (*Prediction, error) {
	df, err := BuildForDay(db, userID, day)
	if err != nil {
		return nil, err
	}
	if df == nil {
		return nil, nil
	}
	pred := p.Predict(*df)
	return &pred, nil
}

// ApplyFloor: önerilen miktar en az 1 ve en az bugünkü satışın %110'u (aşağı yuvarlanmış) olur.
// Sonuç math.MaxInt32 ile sınırlıdır.
func ApplyFloor(predicted float64, sold int) int {
	floor := math.Max(1, math.Floor(float64(sold)*baselineFactor))
	if math.IsNaN(predicted) {
		predicted = floor
	}
	final := math.Max(floor, predicted)
	if final >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(final)
}
