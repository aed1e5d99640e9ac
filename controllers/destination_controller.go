package controllers

import (
	"strings"

	"gatepass-app/models"
	"gatepass-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DestinationController struct {
	DB *gorm.DB
}

func NewDestinationController(db *gorm.DB) *DestinationController {
	return &DestinationController{DB: db}
}

func (c *DestinationController) GetAllDestinations(ctx *fiber.Ctx) error {
	var destinations []models.Destination
	query := c.DB
	if ctx.QueryBool("active", false) {
		query = query.Where("is_active = ?", 1)
	}
	if err := query.Order("destination_name asc").Find(&destinations).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch destinations",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Destinations found",
		"data":    destinations,
	})
}

func (c *DestinationController) CreateDestination(ctx *fiber.Ctx) error {
	var input struct {
		DestinationName string      `json:"destinationName" validate:"required,min=2"`
		DestinationCode string      `json:"destinationCode" validate:"required,min=2"`
		EmailID         string      `json:"emailID" validate:"omitempty,email"`
		IsActive        interface{} `json:"isActive"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	input.DestinationName = strings.TrimSpace(input.DestinationName)
	input.DestinationCode = strings.TrimSpace(input.DestinationCode)
	input.EmailID = strings.TrimSpace(input.EmailID)

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var existing models.Destination
	if err := c.DB.Where("LOWER(destination_code) = ?", strings.ToLower(input.DestinationCode)).
		First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Destination code already exists",
		})
	}

	isActive := 0
	if utils.CoerceBool(input.IsActive, true) {
		isActive = 1
	}

	destination := models.Destination{
		DestinationName: input.DestinationName,
		DestinationCode: input.DestinationCode,
		IsActive:        isActive,
		CreatedBy:       int(ctx.Locals("userID").(float64)),
	}
	if input.EmailID != "" {
		destination.EmailID = &input.EmailID
	}

	if err := c.DB.Create(&destination).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create destination",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Destination created successfully",
		"id":      destination.ID,
		"data":    destination,
	})
}

func (c *DestinationController) UpdateDestination(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid ID"})
	}

	var input struct {
		DestinationName string      `json:"destinationName" validate:"required,min=2"`
		EmailID         string      `json:"emailID" validate:"omitempty,email"`
		IsActive        interface{} `json:"isActive"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var destination models.Destination
	if err := c.DB.First(&destination, "id = ?", id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Destination not found"})
	}

	destination.DestinationName = strings.TrimSpace(input.DestinationName)
	email := strings.TrimSpace(input.EmailID)
	if email != "" {
		destination.EmailID = &email
	} else {
		destination.EmailID = nil
	}
	if utils.CoerceBool(input.IsActive, destination.IsActive != 0) {
		destination.IsActive = 1
	} else {
		destination.IsActive = 0
	}
	destination.UpdatedBy = int(ctx.Locals("userID").(float64))

	if err := c.DB.Save(&destination).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Destination updated successfully",
		"data":    destination,
	})
}
