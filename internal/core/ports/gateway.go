package ports

import (
	"context"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
)

// AuthResult is returned by every authentication operation.
type AuthResult struct {
	User  domain.User
	Token string
}

// FarmerProfile carries the registration payload for a farmer account.
type FarmerProfile struct {
	Username    string  `json:"username" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	Address     string  `json:"address" validate:"required"`
	PhoneNumber string  `json:"phoneNumber" validate:"required"`
	LandArea    float64 `json:"landArea" validate:"required,gt=0"`
	CropType    string  `json:"cropType" validate:"required"`
}

// LaborerProfile carries the registration payload for a laborer account.
type LaborerProfile struct {
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

// OrderDraft is the payload for creating a new work order.
type OrderDraft struct {
	LaborerID   string  `json:"laborerId" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Wage        float64 `json:"wage" validate:"required,gt=0"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
}

// Gateway is the typed boundary to the remote marketplace API. It is the only
// component permitted to perform network I/O. Every call attaches the bearer
// token when present, is single-shot (no automatic retry), and normalizes
// transport and application failures into the domain error taxonomy.
type Gateway interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	RegisterFarmer(ctx context.Context, profile FarmerProfile) (*AuthResult, error)
	RegisterLaborer(ctx context.Context, profile LaborerProfile) (*AuthResult, error)

	CreateOrder(ctx context.Context, token string, draft OrderDraft) (*domain.Order, error)
	// ListMyOrders returns the orders assigned to the authenticated laborer.
	ListMyOrders(ctx context.Context, token string) ([]domain.Order, error)
	// ListMyPlacedOrders returns the orders created by the authenticated farmer.
	ListMyPlacedOrders(ctx context.Context, token string) ([]domain.Order, error)
	ListLaborers(ctx context.Context, token string) ([]domain.LaborerProfile, error)
	UpdateOrderStatus(ctx context.Context, token, orderID string, status domain.OrderStatus) (*domain.Order, error)
}
