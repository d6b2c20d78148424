package main

import (
	"github.com/rithvisal/inksign/internal/config"
	"github.com/rithvisal/inksign/internal/database"
	"github.com/rithvisal/inksign/internal/env"
	"github.com/rithvisal/inksign/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`)

	migrateErr := db.AutoMigrate(&model.User{}, &model.Document{}, &model.SignatureField{}, &model.Signer{})
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}
}
