package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"foodshare-backend/internal/config"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/forecast"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	if cfg.PartitionByOwner {
		log.Println("Hedef kaydırma restoran bazında yapılıyor (TRAIN_PARTITION_BY_OWNER=true)")
	}

	res, err := forecast.Train(database.DB, forecast.TrainOptions{
		ModelDir:         cfg.ModelDir,
		PartitionByOwner: cfg.PartitionByOwner,
	})
	if errors.Is(err, forecast.ErrInsufficientData) {
		fmt.Println("❌ Modeli eğitmek için yeterli veri yok. Daha fazla günlük kayıt ekleyin.")
		fmt.Println("  ", err)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("[FATAL] Eğitim başarısız: %v", err)
	}

	fmt.Printf("✅ Modeller eğitildi ve kaydedildi (%d gün, %d örnek, run_id=%s): %s\n",
		res.Rows, res.Samples, res.RunID, strings.Join(res.Paths, ", "))
}
