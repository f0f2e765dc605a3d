package kitchen

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"

	"foodshare-backend/internal/forecast"
)

// TrainingCSV her kapanışta günün özellik satırını düz dosyaya ekler.
// Sunucu bu dosyayı hiç okumaz; ileride yeniden eğitim için birikir.
type TrainingCSV struct {
	path string
	mu   sync.Mutex
}

func NewTrainingCSV(path string) *TrainingCSV {
	return &TrainingCSV{path: path}
}

// Append dosya yeni oluşturuluyorsa önce başlık satırını yazar.
func (w *TrainingCSV) Append(df forecast.DayFeatures) error {
	if w == nil || w.path == "" {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	_, statErr := os.Stat(w.path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("eğitim CSV dosyası açılamadı: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if isNew {
		if err := cw.Write(forecast.CSVHeader()); err != nil {
			return err
		}
	}
	if err := cw.Write(df.CSVRecord()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
