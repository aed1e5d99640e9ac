package repositories

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gatepass-app/models"
	"gatepass-app/utils"

	"gorm.io/gorm"
)

// ErrSequenceResolution marks a failure to read the issued pass numbers
// while deriving the next one. Creation must abort on it: falling back to
// sequence 1 would mint a duplicate.
var ErrSequenceResolution = errors.New("failed to resolve last issued gate pass number")

type GatePassRepository struct {
	db *gorm.DB
}

func NewGatePassRepository(db *gorm.DB) *GatePassRepository {
	return &GatePassRepository{db: db}
}

// passNumberMutex serializes number allocation across concurrent creates.
// Two requests reading the same highest sequence would otherwise both issue
// the same number; the allocation and the insert happen under one lock and
// one transaction.
var passNumberMutex sync.Mutex

// GenerateGatePassNumber derives the next number for the date from the
// numbers already issued that day. Runs inside the caller's transaction so
// the read and the subsequent insert are atomic.
func (r *GatePassRepository) GenerateGatePassNumber(tx *gorm.DB, date time.Time) (string, error) {
	prefix, err := utils.PassPrefix(date)
	if err != nil {
		return "", err
	}

	var numbers []string
	if err := tx.Model(&models.GatePassHeader{}).
		Where("gatepass_no LIKE ?", prefix+"%").
		Pluck("gatepass_no", &numbers).Error; err != nil {
		return "", fmt.Errorf("%w: %v", ErrSequenceResolution, err)
	}

	lastIssued, err := utils.LastIssued(date, numbers)
	if err != nil {
		return "", err
	}

	return utils.NextNumber(date, lastIssued)
}

// CreateGatePass allocates the pass number and inserts the header with its
// items atomically. The header's GatepassNo field is filled on success.
func (r *GatePassRepository) CreateGatePass(header *models.GatePassHeader) error {
	passNumberMutex.Lock()
	defer passNumberMutex.Unlock()

	return r.db.Transaction(func(tx *gorm.DB) error {
		gatepassNo, err := r.GenerateGatePassNumber(tx, header.Date)
		if err != nil {
			return err
		}

		header.GatepassNo = gatepassNo
		if err := tx.Create(header).Error; err != nil {
			return err
		}
		return nil
	})
}

// UpdateGatePass replaces the header fields and line items. The pass number
// and audit creation fields are never touched.
func (r *GatePassRepository) UpdateGatePass(header *models.GatePassHeader) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.GatePassHeader
		if err := tx.Where("id = ?", header.ID).First(&existing).Error; err != nil {
			return err
		}

		if !existing.IsEnable {
			return fmt.Errorf("gate pass %s is disabled", existing.GatepassNo)
		}

		updates := map[string]interface{}{
			"date":           header.Date,
			"destination":    header.Destination,
			"destination_id": header.DestinationID,
			"carried_by":     header.CarriedBy,
			"through":        header.Through,
			"mobile_no":      header.MobileNo,
			"returnable":     header.Returnable,
			"modified_by":    header.ModifiedBy,
			"modified_at":    header.ModifiedAt,
		}
		if err := tx.Model(&models.GatePassHeader{}).Where("id = ?", header.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("gate_pass_id = ?", header.ID).Delete(&models.GatePassItem{}).Error; err != nil {
			return err
		}
		for i := range header.Items {
			header.Items[i].ID = 0
			header.Items[i].GatePassID = header.ID
		}
		if len(header.Items) > 0 {
			if err := tx.Create(&header.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ResolveDestinationID maps the supplied id or human-entered code onto a
// destination row. An unresolved destination never blocks the pass: the
// UNKNOWN sentinel destination is used instead.
func (r *GatePassRepository) ResolveDestinationID(destinationID int64, destinationCode string) int64 {
	if destinationID > 0 {
		var count int64
		r.db.Model(&models.Destination{}).Where("id = ?", destinationID).Count(&count)
		if count > 0 {
			return destinationID
		}
	}

	code := strings.TrimSpace(destinationCode)
	if code != "" {
		var dest models.Destination
		if err := r.db.Where("LOWER(destination_code) = ?", strings.ToLower(code)).First(&dest).Error; err == nil {
			return int64(dest.ID)
		}
	}

	var sentinel models.Destination
	if err := r.db.Where("destination_code = ?", "UNKNOWN").First(&sentinel).Error; err == nil {
		return int64(sentinel.ID)
	}
	return 0
}
