package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/stub/metrics"
	"github.com/agrowork/agrowork-cli/internal/stub/store"
)

// AuthHandler implements the /auth endpoints of the marketplace contract:
// role-specific registration and username/password login, both returning a
// bearer token with the public user record.
type AuthHandler struct {
	store     *store.Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(st *store.Store, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{store: st, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (h *AuthHandler) RegisterFarmer(c echo.Context) error {
	var req registerFarmerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.register(&store.User{
		User:        domain.User{Username: req.Username, Role: domain.RoleFarmer},
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		LandArea:    req.LandArea,
		CropType:    req.CropType,
	}, req.Password)
	if err != nil {
		return err
	}

	return h.issue(c, http.StatusCreated, user, "farmer registered")
}

func (h *AuthHandler) RegisterLaborer(c echo.Context) error {
	var req registerLaborerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.register(&store.User{
		User:        domain.User{Username: req.Username, Role: domain.RoleLaborer},
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Skills:      req.Skills,
		Experience:  req.Experience,
	}, req.Password)
	if err != nil {
		return err
	}

	return h.issue(c, http.StatusCreated, user, "laborer registered")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.store.FindByUsername(req.Username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return h.issue(c, http.StatusOK, user, "login successful")
}

func (h *AuthHandler) register(u *store.User, password string) (*store.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)

	created, err := h.store.CreateUser(u)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(created.Role)).Inc()
	return created, nil
}

func (h *AuthHandler) issue(c echo.Context, code int, user *store.User, message string) error {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(h.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		return err
	}

	return respond(c, code, authData{Token: token, User: user.User}, message)
}
