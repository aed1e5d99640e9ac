package models

import (
	"gatepass-app/controllers/idgen"
	"gatepass-app/types"
	"time"

	"gorm.io/gorm"
)

type Destination struct {
	ID              types.SnowflakeID `json:"id" gorm:"primaryKey"`
	DestinationName string            `json:"destinationName"`
	DestinationCode string            `json:"destinationCode" gorm:"unique"`
	EmailID         *string           `json:"emailID"`
	IsActive        int               `json:"isActive" gorm:"default:1"`
	CreatedAt       time.Time
	CreatedBy       int
	UpdatedAt       time.Time
	UpdatedBy       int
	DeletedAt       gorm.DeletedAt
	DeletedBy       int
}

func (d *Destination) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == 0 {
		d.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}
