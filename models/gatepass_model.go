package models

import (
	"time"

	"gatepass-app/types"

	"gorm.io/gorm"
)

// GatePassHeader is one issued gate pass. The ID is the client-generated
// string identity (timestamp + random suffix); the server fills one in when
// the client sends none. GatepassNo is immutable once issued.
type GatePassHeader struct {
	ID            string            `json:"id" gorm:"primaryKey;size:64"`
	GatepassNo    string            `json:"gatepassNo" gorm:"uniqueIndex;size:32"`
	Date          time.Time         `json:"date"`
	Destination   string            `json:"destination"`
	DestinationID types.SnowflakeID `json:"destinationId"`
	CarriedBy     string            `json:"carriedBy"`
	Through       string            `json:"through"`
	MobileNo      string            `json:"mobileNo"`
	IsEnable      bool              `json:"isEnable" gorm:"default:true"`
	Returnable    bool              `json:"returnable" gorm:"default:false"`
	Items         []GatePassItem    `json:"items" gorm:"foreignKey:GatePassID;references:ID"`
	CreatedBy     string            `json:"createdBy"`
	CreatedAt     time.Time         `json:"createdAt"`
	ModifiedBy    *string           `json:"modifiedBy"`
	ModifiedAt    *time.Time        `json:"modifiedAt"`
	DeletedAt     gorm.DeletedAt    `json:"-"`
}

// GatePassItem is one line of a gate pass. SlNo is fixed at creation.
type GatePassItem struct {
	ID          uint   `json:"-" gorm:"primaryKey"`
	GatePassID  string `json:"-" gorm:"index;size:64"`
	SlNo        int    `json:"slNo"`
	Description string `json:"description"`
	MakeItem    string `json:"makeItem"`
	Model       string `json:"model"`
	SerialNo    string `json:"serialNo"`
	Qty         int    `json:"qty"`
}
