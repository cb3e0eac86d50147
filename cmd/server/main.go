package main

import (
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/router"
	"blogapi/internal/token"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Info("Database connection established")

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiresIn)
	r := router.New(cfg, gdb, tokens, log)

	log.Infof("Server listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
