package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"homebook/internal/dates"
	apperrors "homebook/internal/errors"
	"homebook/internal/middleware"
	"homebook/internal/models"
	"homebook/internal/money"
	"homebook/internal/services"
	"homebook/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseQueryDate reads an optional YYYY-MM-DD (or RFC 3339) query parameter.
// A missing or empty parameter yields nil.
func parseQueryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := dates.ParseFlexible(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, key+": "+err.Error())
	}
	return &d, nil
}

// parseDateRange reads the mandatory report period parameters.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	start, err := parseQueryDate(c, "transaction_start_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseQueryDate(c, "transaction_end_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, apperrors.ErrMissingDateRange
	}
	return *start, *end, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	middleware.RenderError(c, err)
}

// EntryResponse is a transaction or planned transaction as returned to clients.
type EntryResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Comment  string `json:"comment"`
}

func newEntryResponse(id string, date time.Time, t models.TransactionType, category *models.Category, amount decimal.Decimal, comment string) EntryResponse {
	name := ""
	if category != nil {
		name = category.Name
	}
	return EntryResponse{
		ID:       id,
		Date:     dates.Format(date),
		Type:     t.String(),
		Category: name,
		Amount:   money.Format(amount),
		Comment:  comment,
	}
}

func transactionResponse(t *models.Transaction) EntryResponse {
	return newEntryResponse(t.ID, t.Date, t.Type, t.Category, t.Amount, t.Comment)
}

func transactionResponses(ts []models.Transaction) []EntryResponse {
	out := make([]EntryResponse, 0, len(ts))
	for i := range ts {
		out = append(out, transactionResponse(&ts[i]))
	}
	return out
}

func plannedResponse(p *models.PlanningTransaction) EntryResponse {
	return newEntryResponse(p.ID, p.Date, p.Type, p.Category, p.Amount, p.Comment)
}

// EntryRequest is the payload for adding a transaction or planned transaction.
// Category accepts either a category id or its exact name. Amount accepts a
// JSON number or a numeric string.
type EntryRequest struct {
	Type     string `json:"type" binding:"required,transaction_label" example:"Expense"`
	Category string `json:"category" binding:"required,max=100" example:"Food"`
	Date     string `json:"date" binding:"omitempty,iso_date" example:"2024-03-15"`
	Amount   Amount `json:"amount" binding:"required,money" swaggertype:"string" example:"100.00"`
	Comment  string `json:"comment" binding:"max=255"`
}

// input converts a bound request into service input.
func (r *EntryRequest) input() (services.TransactionInput, error) {
	var in services.TransactionInput

	t, ok := models.ParseTransactionType(r.Type)
	if !ok {
		return in, apperrors.ErrInvalidTransactionType
	}
	amount, err := money.ParseAmount(string(r.Amount))
	if err != nil {
		return in, apperrors.ErrInvalidAmount
	}
	if r.Date != "" {
		d, err := dates.Parse(r.Date)
		if err != nil {
			return in, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		in.Date = d
	}

	in.Type = t
	in.Category = r.Category
	in.Amount = amount
	in.Comment = r.Comment
	return in, nil
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
