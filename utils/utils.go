package utils

import (
	"gatepass-app/models"

	"gorm.io/gorm"
)

func InsertLog(db *gorm.DB, log models.IntegrationLog) {
	db.Create(&log)
}
