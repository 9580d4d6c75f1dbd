package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homebook/internal/dates"
	apperrors "homebook/internal/errors"
	"homebook/internal/models"
	"homebook/internal/money"
	"homebook/internal/pagination"
	"homebook/internal/services"
)

// PlannedHandler handles scheduled transactions.
type PlannedHandler struct {
	plannedService services.PlannedTransactionServicer
	auditService   services.AuditServicer
}

// NewPlannedHandler creates a new PlannedHandler.
func NewPlannedHandler(plannedService services.PlannedTransactionServicer, auditService services.AuditServicer) *PlannedHandler {
	return &PlannedHandler{plannedService: plannedService, auditService: auditService}
}

// PlannedPageResponse is a page of planned transactions.
type PlannedPageResponse struct {
	Data       []EntryResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalItems int64           `json:"total_items"`
	TotalPages int             `json:"total_pages"`
	HasNext    bool            `json:"has_next"`
}

// ListPlanned handles listing planned transactions
// @Summary     List planned transactions
// @Description Page through the caller's scheduled transactions, soonest first
// @Tags        planned
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Success     200 {object} PlannedPageResponse
// @Failure     400 {object} ErrorResponse "Invalid paging"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /planned/transactions [get]
func (h *PlannedHandler) ListPlanned(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.plannedService.GetPlannedTransactions(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PlannedPageResponse{
		Data:       plannedResponses(result.Data),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
		HasNext:    result.HasNext,
	})
}

// CreatePlanned handles scheduling a transaction
// @Summary     Add a planned transaction
// @Description Schedule an entry for today or a later date. Planned entries never change the balance.
// @Tags        planned
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EntryRequest true "Planned transaction details"
// @Success     201 {object} EntryResponse
// @Failure     400 {object} ErrorResponse "Invalid input or past date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /planned/add_scheduled_transaction [post]
func (h *PlannedHandler) CreatePlanned(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.plannedService.CreatePlannedTransaction(c.Request.Context(), userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreatePlanned, "planning_transaction", plan.ID, c.ClientIP(),
		map[string]interface{}{"type": input.Type.String(), "amount": money.Format(input.Amount), "date": dates.Format(plan.Date)})

	c.JSON(http.StatusCreated, plannedResponse(plan))
}

// DeletePlanned handles removing a planned transaction
// @Summary     Delete a planned transaction
// @Tags        planned
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Planned transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Planned transaction not found"
// @Router      /planned/del_scheduled_transaction/{id} [post]
func (h *PlannedHandler) DeletePlanned(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.plannedService.DeletePlannedTransaction(c.Request.Context(), userID, planID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeletePlanned, "planning_transaction", planID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Planned transaction deleted successfully"})
}

// GetPlannedStatistics handles the planned totals report
// @Summary     Planned statistics
// @Description Overall planned income and expense for an inclusive period; null when there are no entries of that type
// @Tags        planned
// @Produce     json
// @Security    BearerAuth
// @Param       transaction_start_date query string true "Period start (YYYY-MM-DD)"
// @Param       transaction_end_date   query string true "Period end (YYYY-MM-DD)"
// @Success     200 {object} StatisticsResponse
// @Failure     400 {object} ErrorResponse "Missing or malformed period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /planned/statistics [get]
func (h *PlannedHandler) GetPlannedStatistics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.plannedService.GetPlannedStatistics(c.Request.Context(), userID, services.DateRange{Start: start, End: end})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatisticsResponse{StatisticData: totalsData(*totals)})
}

func plannedResponses(plans []models.PlanningTransaction) []EntryResponse {
	out := make([]EntryResponse, 0, len(plans))
	for i := range plans {
		out = append(out, plannedResponse(&plans[i]))
	}
	return out
}
