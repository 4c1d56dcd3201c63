package main

import (
	"atolye-backend/internal/config"
	"atolye-backend/internal/server"
	"atolye-backend/internal/store"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	st := store.New(cfg.DataDir)

	app := server.New(cfg, st)

	logrus.Info("Server çalışıyor port: ", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logrus.Fatal(err)
	}
}
