// Package api implements the order gateway: the sole component performing
// network I/O against the remote marketplace API. It attaches the bearer
// token when present and normalizes transport and application failures into
// the domain error taxonomy.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/core/ports"
)

// Client is the resty-backed implementation of ports.Gateway.
// All calls are single-shot: no automatic retry.
type Client struct {
	http     *resty.Client
	validate *validator.Validate
	log      zerolog.Logger
}

var _ ports.Gateway = (*Client)(nil)

// Options configures the gateway client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

func NewClient(opts Options, log zerolog.Logger) *Client {
	hc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if opts.Debug {
		hc.SetDebug(true)
	}

	return &Client{
		http:     hc,
		validate: validator.New(),
		log:      log,
	}
}

func (c *Client) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: username, Password: password}).
		Post("/auth/login")
	return c.authResult(resp, err, "invalid username or password")
}

func (c *Client) RegisterFarmer(ctx context.Context, profile ports.FarmerProfile) (*ports.AuthResult, error) {
	if err := c.validate.Struct(profile); err != nil {
		return nil, domain.NewRemoteError(domain.ErrValidation, validationMessage(err), "")
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(profile).
		Post("/auth/register/farmer")
	return c.authResult(resp, err, "farmer registration failed")
}

func (c *Client) RegisterLaborer(ctx context.Context, profile ports.LaborerProfile) (*ports.AuthResult, error) {
	if err := c.validate.Struct(profile); err != nil {
		return nil, domain.NewRemoteError(domain.ErrValidation, validationMessage(err), "")
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(profile).
		Post("/auth/register/laborer")
	return c.authResult(resp, err, "laborer registration failed")
}

func (c *Client) CreateOrder(ctx context.Context, token string, draft ports.OrderDraft) (*domain.Order, error) {
	if err := c.validate.Struct(draft); err != nil {
		return nil, domain.NewRemoteError(domain.ErrValidation, validationMessage(err), "")
	}

	resp, err := c.request(ctx, token).
		SetBody(draft).
		Post("/orders")
	if err != nil {
		return nil, networkErr(err)
	}
	if !resp.IsSuccess() {
		return nil, c.remoteErr(resp, "could not create the order", map[int]error{
			http.StatusBadRequest:          domain.ErrValidation,
			http.StatusUnprocessableEntity: domain.ErrValidation,
		})
	}
	return c.decodeOrder(resp)
}

func (c *Client) ListMyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	return c.listOrders(ctx, token, "/orders/my-orders")
}

func (c *Client) ListMyPlacedOrders(ctx context.Context, token string) ([]domain.Order, error) {
	return c.listOrders(ctx, token, "/orders/my-placed-orders")
}

func (c *Client) ListLaborers(ctx context.Context, token string) ([]domain.LaborerProfile, error) {
	resp, err := c.request(ctx, token).Get("/laborers")
	if err != nil {
		return nil, networkErr(err)
	}
	if !resp.IsSuccess() {
		return nil, c.remoteErr(resp, "could not load laborers", nil)
	}

	items, err := c.decodeList(resp)
	if err != nil {
		return nil, err
	}

	laborers := make([]domain.LaborerProfile, 0, len(items))
	for _, raw := range items {
		var w wireLaborer
		if err := json.Unmarshal(raw, &w); err != nil {
			c.log.Warn().Err(err).Msg("skipping undecodable laborer entry")
			continue
		}
		laborers = append(laborers, w.toDomain())
	}
	return laborers, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	resp, err := c.request(ctx, token).
		SetBody(statusRequest{Status: string(status)}).
		Patch(fmt.Sprintf("/orders/%s/status", orderID))
	if err != nil {
		return nil, networkErr(err)
	}
	if !resp.IsSuccess() {
		return nil, c.remoteErr(resp, "the status change was rejected", map[int]error{
			http.StatusBadRequest:          domain.ErrInvalidTransition,
			http.StatusConflict:            domain.ErrInvalidTransition,
			http.StatusUnprocessableEntity: domain.ErrInvalidTransition,
		})
	}
	return c.decodeOrder(resp)
}

// --- helpers ---

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

func (c *Client) listOrders(ctx context.Context, token, path string) ([]domain.Order, error) {
	resp, err := c.request(ctx, token).Get(path)
	if err != nil {
		return nil, networkErr(err)
	}
	if !resp.IsSuccess() {
		return nil, c.remoteErr(resp, "could not load orders", nil)
	}

	items, err := c.decodeList(resp)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(items))
	for _, raw := range items {
		var w wireOrder
		if err := json.Unmarshal(raw, &w); err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("skipping undecodable order entry")
			continue
		}
		orders = append(orders, w.toDomain())
	}
	return orders, nil
}

// authResult normalizes the shared login/register response handling.
func (c *Client) authResult(resp *resty.Response, err error, fallback string) (*ports.AuthResult, error) {
	if err != nil {
		return nil, networkErr(err)
	}
	if !resp.IsSuccess() {
		// Any rejected credential exchange is an auth failure, whatever the code.
		var body errorBody
		_ = json.Unmarshal(resp.Body(), &body)
		return nil, domain.NewRemoteError(domain.ErrAuth, body.Message, fallback)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	var auth wireAuth
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		return nil, domain.NewRemoteError(domain.ErrDataShape, "", "malformed authentication response")
	}

	user := domain.User{
		ID:       string(auth.User.ID),
		Username: auth.User.Username,
		Role:     domain.Role(auth.User.Role),
	}
	if auth.Token == "" || user.ID == "" || !user.Role.Valid() {
		return nil, domain.NewRemoteError(domain.ErrDataShape, "", "incomplete authentication response")
	}
	return &ports.AuthResult{User: user, Token: auth.Token}, nil
}

func (c *Client) decodeOrder(resp *resty.Response) (*domain.Order, error) {
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	var w wireOrder
	if err := json.Unmarshal(env.Data, &w); err != nil {
		return nil, domain.NewRemoteError(domain.ErrDataShape, "", "malformed order response")
	}
	o := w.toDomain()
	return &o, nil
}

// decodeList unwraps the envelope and insists the payload is a JSON array.
// Anything else (object, string, null) is a data-shape failure, never
// rendered as garbage.
func (c *Client) decodeList(resp *resty.Response) ([]json.RawMessage, error) {
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, domain.NewRemoteError(domain.ErrDataShape, "", "expected a list in the response")
	}
	return items, nil
}

func decodeEnvelope(resp *resty.Response) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, domain.NewRemoteError(domain.ErrDataShape, "", "malformed response envelope")
	}
	return &env, nil
}

// remoteErr maps a non-2xx response to the taxonomy. 401/403 are always auth
// failures; overrides refine other codes per operation; everything else is
// the generic remote error. The server's message is surfaced verbatim when
// present.
func (c *Client) remoteErr(resp *resty.Response, fallback string, overrides map[int]error) error {
	var body errorBody
	_ = json.Unmarshal(resp.Body(), &body)

	kind := domain.ErrRemote
	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = domain.ErrAuth
	default:
		if k, ok := overrides[resp.StatusCode()]; ok {
			kind = k
		}
	}

	c.log.Debug().
		Int("status", resp.StatusCode()).
		Str("message", body.Message).
		Msg("remote call failed")

	return domain.NewRemoteError(kind, body.Message, fallback)
}

func networkErr(err error) error {
	return domain.NewRemoteError(domain.ErrNetwork, "", fmt.Sprintf("could not reach the server: %v", err))
}
