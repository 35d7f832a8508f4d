package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
)

// envelope is the contract's success wrapper. Errors use {message} only and
// are rendered by the central error handler.
type envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func respond(c echo.Context, code int, data any, message string) error {
	return c.JSON(code, envelope{Data: data, Message: message})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerFarmerRequest struct {
	Username    string  `json:"username" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	Address     string  `json:"address" validate:"required"`
	PhoneNumber string  `json:"phoneNumber" validate:"required"`
	LandArea    float64 `json:"landArea" validate:"required,gt=0"`
	CropType    string  `json:"cropType" validate:"required"`
}

type registerLaborerRequest struct {
	Username        string   `json:"username" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	ConfirmPassword string   `json:"confirmPassword" validate:"required,eqfield=Password"`
	Address         string   `json:"address" validate:"required"`
	PhoneNumber     string   `json:"phoneNumber" validate:"required"`
	Age             int      `json:"age" validate:"required,gte=15"`
	Skills          []string `json:"skills" validate:"required,min=1"`
	Experience      string   `json:"experience" validate:"required"`
}

type createOrderRequest struct {
	LaborerID   string  `json:"laborerId" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Wage        float64 `json:"wage" validate:"required,gt=0"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted completed cancelled"`
}

type authData struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
