package migration

import (
	"gatepass-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.Destination{},
		&models.GatePassHeader{},
		&models.GatePassItem{},
		&models.IntegrationLog{},
	)
}
