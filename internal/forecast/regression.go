package forecast

import (
	"errors"
	"fmt"
	"time"

	"foodshare-backend/internal/models"

	"gonum.org/v1/gonum/mat"
)

// FeatureNames model girdisinin sabit sırası.
var FeatureNames = []string{"day_of_week", "qty_added", "qty_sold", "qty_waste"}

// Model bir yemek için eğitilmiş sıradan en küçük kareler modeli.
type Model struct {
	Dish         models.Dish `json:"dish"`
	Features     []string    `json:"features"`
	Intercept    float64     `json:"intercept"`
	Coefficients []float64   `json:"coefficients"`
	Samples      int         `json:"samples"`
	RunID        string      `json:"run_id"`
	TrainedAt    time.Time   `json:"trained_at"`
}

func (m *Model) Predict(row []float64) float64 {
	y := m.Intercept
	for i, c := range m.Coefficients {
		if i < len(row) {
			y += c * row[i]
		}
	}
	return y
}

func (m *Model) validate() error {
	if !m.Dish.Valid() {
		return fmt.Errorf("bilinmeyen yemek: %q", m.Dish)
	}
	if len(m.Coefficients) != len(FeatureNames) {
		return fmt.Errorf("%s modeli %d katsayı içeriyor, %d bekleniyordu", m.Dish, len(m.Coefficients), len(FeatureNames))
	}
	return nil
}

// rcond altındaki tekil değerler sıfır kabul edilir.
const rcond = 1e-10

// Fit kesişimli sıradan en küçük kareler çözümü döner. X ve y merkezlenir,
// katsayılar SVD ile minimum normlu çözüm olarak bulunur; bu yüzden
// waste = added - sold gibi doğrusal bağımlı kolonlar hata üretmez.
func Fit(X [][]float64, y []float64) (float64, []float64, error) {
	n := len(X)
	if n == 0 || n != len(y) {
		return 0, nil, errors.New("eğitim verisi boş ya da boyutlar uyuşmuyor")
	}
	p := len(X[0])
	if p == 0 {
		return 0, nil, errors.New("özellik kolonu yok")
	}

	xMean := make([]float64, p)
	var yMean float64
	for i, row := range X {
		if len(row) != p {
			return 0, nil, fmt.Errorf("satır %d: %d kolon, %d bekleniyordu", i, len(row), p)
		}
		for j, v := range row {
			xMean[j] += v
		}
		yMean += y[i]
	}
	for j := range xMean {
		xMean[j] /= float64(n)
	}
	yMean /= float64(n)

	a := mat.NewDense(n, p, nil)
	b := mat.NewVecDense(n, nil)
	for i, row := range X {
		for j, v := range row {
			a.Set(i, j, v-xMean[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	coef := make([]float64, p)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return 0, nil, errors.New("SVD ayrıştırması başarısız")
	}
	if rank := svd.Rank(rcond); rank > 0 {
		var sol mat.VecDense
		svd.SolveVecTo(&sol, b, rank)
		for j := range coef {
			coef[j] = sol.AtVec(j)
		}
	}

	intercept := yMean
	for j := range coef {
		intercept -= coef[j] * xMean[j]
	}
	return intercept, coef, nil
}
