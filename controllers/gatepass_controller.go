package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gatepass-app/controllers/idgen"
	"gatepass-app/mailer"
	"gatepass-app/models"
	"gatepass-app/repositories"
	"gatepass-app/types"
	"gatepass-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type GatePassController struct {
	DB   *gorm.DB
	repo *repositories.GatePassRepository
}

func NewGatePassController(db *gorm.DB) *GatePassController {
	return &GatePassController{DB: db, repo: repositories.NewGatePassRepository(db)}
}

type gatePassItemInput struct {
	SlNo        int    `json:"slNo"`
	Description string `json:"description"`
	MakeItem    string `json:"makeItem"`
	Model       string `json:"model"`
	SerialNo    string `json:"serialNo"`
	Qty         int    `json:"qty"`
}

type gatePassInput struct {
	ID            string              `json:"id"`
	Date          string              `json:"date" validate:"required"`
	Destination   string              `json:"destination" validate:"required"`
	DestinationID int64               `json:"destinationId"`
	CarriedBy     string              `json:"carriedBy" validate:"required"`
	Through       string              `json:"through"`
	MobileNo      string              `json:"mobileNo"`
	Returnable    interface{}         `json:"returnable"`
	Items         []gatePassItemInput `json:"items"`
}

// parseDateValue accepts the date formats the frontend sends: an ISO
// instant with the fixed +05:30 offset, plain RFC 3339, or a bare date.
func parseDateValue(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	layouts := []string{
		"2006-01-02T15:04:05.000-07:00",
		time.RFC3339,
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", utils.ErrInvalidDate, value)
}

// normalizeItems fills blanks with the placeholder, floors quantities and
// reassigns the serial numbers. An empty list becomes one placeholder line.
func normalizeItems(inputs []gatePassItemInput) []models.GatePassItem {
	if len(inputs) == 0 {
		inputs = []gatePassItemInput{{}}
	}

	items := make([]models.GatePassItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, models.GatePassItem{
			SlNo:        i + 1,
			Description: utils.NormalizeText(in.Description),
			MakeItem:    utils.NormalizeText(in.MakeItem),
			Model:       utils.NormalizeText(in.Model),
			SerialNo:    utils.NormalizeText(in.SerialNo),
			Qty:         utils.NormalizeQty(in.Qty),
		})
	}
	return items
}

func (c *GatePassController) CreateGatePass(ctx *fiber.Ctx) error {
	var input gatePassInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	date, err := parseDateValue(input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid gate pass date",
			"error":   err.Error(),
		})
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = strconv.FormatInt(idgen.GenerateID(), 10)
	}

	createdBy, _ := ctx.Locals("email").(string)

	header := models.GatePassHeader{
		ID:            id,
		Date:          date,
		Destination:   strings.TrimSpace(input.Destination),
		DestinationID: types.SnowflakeID(c.repo.ResolveDestinationID(input.DestinationID, input.Destination)),
		CarriedBy:     strings.TrimSpace(input.CarriedBy),
		Through:       utils.NormalizeText(input.Through),
		MobileNo:      strings.TrimSpace(input.MobileNo),
		IsEnable:      true,
		Returnable:    utils.CoerceBool(input.Returnable, false),
		Items:         normalizeItems(input.Items),
		CreatedBy:     createdBy,
	}

	if err := c.repo.CreateGatePass(&header); err != nil {
		if errors.Is(err, repositories.ErrSequenceResolution) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to allocate gate pass number",
				"code":    "SEQUENCE_ALLOCATION",
				"error":   err.Error(),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create gate pass",
			"error":   err.Error(),
		})
	}

	// courtesy notification, never blocks the response
	var dest models.Destination
	if err := c.DB.First(&dest, "id = ?", header.DestinationID).Error; err == nil && dest.EmailID != nil {
		go mailer.NotifyGatePassCreated(c.DB, *dest.EmailID, header)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "Gate pass created successfully",
		"gatePassId": header.ID,
		"gatepassNo": header.GatepassNo,
	})
}

type gatePassRow struct {
	models.GatePassHeader
	UserName string `json:"userName"`
}

func (c *GatePassController) GetAllGatePasses(ctx *fiber.Ctx) error {
	search := strings.TrimSpace(ctx.Query("search"))
	page := ctx.QueryInt("page", 0)
	limit := ctx.QueryInt("limit", 50)

	query := c.DB.Model(&models.GatePassHeader{}).Preload("Items")
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(gatepass_no) LIKE ? OR LOWER(destination) LIKE ? OR LOWER(carried_by) LIKE ? OR LOWER(created_by) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	query = query.Order("created_at desc")
	if page > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var passes []models.GatePassHeader
	if err := query.Find(&passes).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	rows := make([]gatePassRow, 0, len(passes))
	names := c.userNamesByEmail(passes)
	for _, p := range passes {
		rows = append(rows, gatePassRow{GatePassHeader: p, UserName: names[strings.ToLower(p.CreatedBy)]})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Gate passes found",
		"data":    rows,
		"total":   total,
	})
}

func (c *GatePassController) userNamesByEmail(passes []models.GatePassHeader) map[string]string {
	emails := make([]string, 0, len(passes))
	seen := make(map[string]bool)
	for _, p := range passes {
		email := strings.ToLower(p.CreatedBy)
		if email != "" && !seen[email] {
			seen[email] = true
			emails = append(emails, email)
		}
	}

	names := make(map[string]string)
	if len(emails) == 0 {
		return names
	}

	var users []models.User
	if err := c.DB.Where("LOWER(email) IN ?", emails).Find(&users).Error; err != nil {
		return names
	}
	for _, u := range users {
		names[strings.ToLower(u.Email)] = u.Name
	}
	return names
}

func (c *GatePassController) GetGatePassByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var pass models.GatePassHeader
	if err := c.DB.Preload("Items").First(&pass, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Gate pass not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Gate pass found",
		"data":    pass,
	})
}

func (c *GatePassController) UpdateGatePass(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var input gatePassInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	date, err := parseDateValue(input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid gate pass date",
			"error":   err.Error(),
		})
	}

	modifiedBy, _ := ctx.Locals("email").(string)
	now := time.Now()

	header := models.GatePassHeader{
		ID:            id,
		Date:          date,
		Destination:   strings.TrimSpace(input.Destination),
		DestinationID: types.SnowflakeID(c.repo.ResolveDestinationID(input.DestinationID, input.Destination)),
		CarriedBy:     strings.TrimSpace(input.CarriedBy),
		Through:       utils.NormalizeText(input.Through),
		MobileNo:      strings.TrimSpace(input.MobileNo),
		Returnable:    utils.CoerceBool(input.Returnable, false),
		Items:         normalizeItems(input.Items),
		ModifiedBy:    &modifiedBy,
		ModifiedAt:    &now,
	}

	if err := c.repo.UpdateGatePass(&header); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Gate pass not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update gate pass",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Gate pass updated successfully",
	})
}

func (c *GatePassController) ToggleEnable(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var input struct {
		IsEnable interface{} `json:"isEnable"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var pass models.GatePassHeader
	if err := c.DB.First(&pass, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Gate pass not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	pass.IsEnable = utils.CoerceBool(input.IsEnable, !pass.IsEnable)
	if err := c.DB.Model(&pass).Update("is_enable", pass.IsEnable).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"message":  "Gate pass updated successfully",
		"isEnable": pass.IsEnable,
	})
}

// DeleteGatePass exists as the rollback compensator of a failed creation
// flow; the dashboard never hard-deletes, it disables.
func (c *GatePassController) DeleteGatePass(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gate_pass_id = ?", id).Delete(&models.GatePassItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", id).Delete(&models.GatePassHeader{}).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete gate pass",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (c *GatePassController) ExportGatePasses(ctx *fiber.Ctx) error {
	var passes []models.GatePassHeader
	if err := c.DB.Preload("Items").Order("created_at desc").Find(&passes).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "GatePass No")
	f.SetCellValue(sheet, "B1", "Date")
	f.SetCellValue(sheet, "C1", "Destination")
	f.SetCellValue(sheet, "D1", "Carried By")
	f.SetCellValue(sheet, "E1", "Through")
	f.SetCellValue(sheet, "F1", "Mobile No")
	f.SetCellValue(sheet, "G1", "Items")
	f.SetCellValue(sheet, "H1", "Returnable")
	f.SetCellValue(sheet, "I1", "Enabled")
	f.SetCellValue(sheet, "J1", "Created By")
	f.SetCellValue(sheet, "K1", "Created At")

	for i, p := range passes {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.GatepassNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Date.Format("02-01-2006"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Destination)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.CarriedBy)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Through)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), p.MobileNo)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), len(p.Items))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), p.Returnable)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), p.IsEnable)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), p.CreatedBy)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), p.CreatedAt.Format("02-01-2006 15:04"))
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="gatepass-report.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
