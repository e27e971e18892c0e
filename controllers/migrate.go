package controllers

import (
	"github.com/celestecruzzg/IOT-FINAL/config"
	"github.com/celestecruzzg/IOT-FINAL/models"

	"gorm.io/gorm"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) error {
	config.DB = db
	return db.AutoMigrate(
		&models.Usuario{},
		&models.Parcela{},
		&models.Sensor{},
		&models.HistorialSensor{},
	)
}
