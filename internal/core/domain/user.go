package domain

// Role identifies which side of the marketplace a user is on.
type Role string

const (
	// RoleFarmer places work orders.
	RoleFarmer Role = "farmer"
	// RoleLaborer fulfils work orders.
	RoleLaborer Role = "laborer"
)

// Valid reports whether r is one of the two known marketplace roles.
func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleLaborer
}

// User models an authenticated actor in the marketplace.
type User struct {
	ID       string `json:"id" validate:"required"`
	Username string `json:"username" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=farmer laborer"`
}

// LaborerProfile carries the public directory view of a laborer,
// embedded in orders and returned by the laborer listing.
type LaborerProfile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	Address     string   `json:"address,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Age         int      `json:"age,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Experience  string   `json:"experience,omitempty"`
}
