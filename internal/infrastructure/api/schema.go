package api

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
)

// envelope is the remote API's success wrapper: {data, message}.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// errorBody is the remote API's non-2xx payload.
type errorBody struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// flexID tolerates servers that emit numeric IDs where the contract says
// string. The original backend did both depending on the endpoint.
type flexID string

func (f *flexID) UnmarshalJSON(raw []byte) error {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type wireUser struct {
	ID       flexID `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type wireAuth struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

type wireLaborerRef struct {
	ID       flexID `json:"id"`
	Username string `json:"username"`
}

type wireOrder struct {
	ID          flexID          `json:"id"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Wage        float64         `json:"wage"`
	CreatedAt   string          `json:"createdAt"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	FarmerID    flexID          `json:"farmerId"`
	LaborerID   flexID          `json:"laborerId"`
	Laborer     *wireLaborerRef `json:"laborer,omitempty"`
}

func (w wireOrder) toDomain() domain.Order {
	o := domain.Order{
		ID:          string(w.ID),
		Description: w.Description,
		Status:      domain.OrderStatus(w.Status),
		Wage:        w.Wage,
		CreatedAt:   parseTime(w.CreatedAt),
		StartDate:   parseTime(w.StartDate),
		EndDate:     parseTime(w.EndDate),
		FarmerID:    string(w.FarmerID),
		LaborerID:   string(w.LaborerID),
	}
	if w.Laborer != nil {
		o.Laborer = &domain.LaborerRef{ID: string(w.Laborer.ID), Username: w.Laborer.Username}
	}
	return o
}

type wireLaborer struct {
	ID          flexID   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	PhoneNumber string   `json:"phoneNumber"`
	Age         int      `json:"age"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience"`
}

func (w wireLaborer) toDomain() domain.LaborerProfile {
	return domain.LaborerProfile{
		ID:          string(w.ID),
		Username:    w.Username,
		Email:       w.Email,
		Address:     w.Address,
		PhoneNumber: w.PhoneNumber,
		Age:         w.Age,
		Skills:      w.Skills,
		Experience:  w.Experience,
	}
}

// parseTime accepts the formats the backend has been seen emitting. A value
// that parses as none of them yields the zero time rather than failing the
// whole order.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil && unix > 0 {
		return time.Unix(unix, 0).UTC()
	}
	return time.Time{}
}
