package main

import (
	"log"

	"foodshare-backend/internal/config"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/forecast"
	"foodshare-backend/internal/kitchen"
	"foodshare-backend/internal/models"
	"foodshare-backend/internal/server"
)

func main() {
	cfg := config.Load()
	cfg.RequireServerSecrets()
	models.Location = cfg.Location

	database.Init(cfg)

	// Modeller süreç başında bir kez yüklenir; eksikse sunucu açılmaz
	predictor, err := forecast.NewPredictor(cfg.ModelDir)
	if err != nil {
		log.Fatalf("[FATAL] Tahmin modelleri yüklenemedi: %v (önce cmd/train çalıştırılmalı)", err)
	}
	dal := predictor.Models()[models.DishDal]
	log.Printf("Tahmin modelleri yüklendi: %s (run_id=%s, %d örnek)", cfg.ModelDir, dal.RunID, dal.Samples)

	app := server.New(cfg, server.Options{
		Predictor:   predictor,
		TrainingCSV: kitchen.NewTrainingCSV(cfg.TrainingCSV),
		RequestLog:  true,
	})

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
