package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/stub/metrics"
	"github.com/agrowork/agrowork-cli/internal/stub/store"
)

// OrderHandler implements the /orders and /laborers endpoints.
type OrderHandler struct {
	store *store.Store
	log   zerolog.Logger
}

func NewOrderHandler(st *store.Store, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{store: st, log: log}
}

func (h *OrderHandler) Create(c echo.Context) error {
	farmerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	laborer, err := h.store.FindByID(req.LaborerID)
	if err != nil || laborer.Role != domain.RoleLaborer {
		return echo.NewHTTPError(http.StatusBadRequest, "laborer not found")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startdate must be a date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "enddate must be a date")
	}
	if end.Before(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "enddate must not precede startdate")
	}

	order := h.store.CreateOrder(&domain.Order{
		Description: req.Description,
		Status:      domain.StatusPending,
		Wage:        req.Wage,
		CreatedAt:   time.Now().UTC(),
		StartDate:   start,
		EndDate:     end,
		FarmerID:    farmerID,
		LaborerID:   laborer.ID,
		Laborer:     &domain.LaborerRef{ID: laborer.ID, Username: laborer.Username},
	})

	metrics.OrdersCreatedTotal.Inc()
	h.log.Info().Str("order_id", order.ID).Str("farmer_id", farmerID).Msg("order created")

	return respond(c, http.StatusCreated, order, "order created")
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	laborerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, h.store.OrdersByLaborer(laborerID), "orders for laborer")
}

func (h *OrderHandler) MyPlacedOrders(c echo.Context) error {
	farmerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, h.store.OrdersByFarmer(farmerID), "orders placed by farmer")
}

func (h *OrderHandler) Laborers(c echo.Context) error {
	users := h.store.ListLaborers()
	laborers := make([]domain.LaborerProfile, 0, len(users))
	for _, u := range users {
		laborers = append(laborers, domain.LaborerProfile{
			ID:          u.ID,
			Username:    u.Username,
			Email:       u.Email,
			Address:     u.Address,
			PhoneNumber: u.PhoneNumber,
			Age:         u.Age,
			Skills:      u.Skills,
			Experience:  u.Experience,
		})
	}
	return respond(c, http.StatusOK, laborers, "registered laborers")
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	next := domain.OrderStatus(req.Status)

	order, err := h.store.GetOrder(c.Param("id"))
	if err != nil {
		return err
	}
	// Only the two linked parties may touch an order.
	if userID != order.FarmerID && userID != order.LaborerID {
		return domain.ErrForbidden
	}

	updated, err := h.store.UpdateOrderStatus(order.ID, next)
	if errors.Is(err, domain.ErrInvalidTransition) {
		metrics.TransitionsRejectedTotal.Inc()
		return fmt.Errorf("%w: %s cannot move to %s", domain.ErrInvalidTransition, order.Status, next)
	}
	if err != nil {
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(string(next)).Inc()
	h.log.Info().Str("order_id", order.ID).Str("status", string(next)).Msg("order status updated")

	return respond(c, http.StatusOK, updated, "order status updated")
}

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any store access when the claims are unusable.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
