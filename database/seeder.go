package database

import (
	"errors"
	"log"

	"gatepass-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedDestinations(db)
}

func SeedUserMaster(db *gorm.DB) {
	users := []models.User{
		{
			Username:  "admin",
			Password:  "admin",
			Name:      "Admin",
			Email:     "admin@surakshanet.com",
			Role:      "admin",
			BaseRoute: "/dashboard",
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hashed, hashErr := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				log.Println("Failed to hash seed password:", user.Username, hashErr)
				continue
			}
			user.Password = string(hashed)
			if err := db.Create(&user).Error; err != nil {
				log.Println("Failed to insert user:", user.Username, err)
			} else {
				log.Println("Insert user:", user.Username)
			}
		}
	}
}

func SeedDestinations(db *gorm.DB) {
	destinations := []models.Destination{
		{DestinationCode: "UNKNOWN", DestinationName: "Unknown Destination"},
		{DestinationCode: "HO", DestinationName: "Head Office"},
		{DestinationCode: "LAB-SALTLAKE", DestinationName: "Salt Lake Laboratory"},
	}

	for _, d := range destinations {
		var existing models.Destination
		if err := db.Where("destination_code = ?", d.DestinationCode).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&d).Error; err != nil {
					log.Println("Failed to insert destination:", d.DestinationCode, err)
				}
			}
		}
	}
}
