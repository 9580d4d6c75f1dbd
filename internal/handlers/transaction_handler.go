package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homebook/internal/errors"
	"homebook/internal/money"
	"homebook/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionResponse is the stored entry and the resulting balance.
type CreateTransactionResponse struct {
	Transaction EntryResponse `json:"transaction"`
	Balance     string        `json:"balance" example:"900.00"`
}

// BalanceResponse acknowledges a balance-changing operation.
type BalanceResponse struct {
	Message string `json:"message"`
	Balance string `json:"balance" example:"1000.00"`
}

// EntryListResponse wraps the filtered transactions.
type EntryListResponse struct {
	Transactions []EntryResponse `json:"transactions"`
}

// StatisticsResponse is the ordered report list:
// [{"overall_income": x}, {"overall_expense": y}, {"<category>": z}, ...]
type StatisticsResponse struct {
	StatisticData []map[string]*string `json:"statistic_data"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Add a transaction
// @Description Record an income or expense and update the balance. The date defaults to today and may not be in the future.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EntryRequest true "Transaction details"
// @Success     201 {object} CreateTransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or future date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /add_transaction [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
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

	transaction, account, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": input.Type.String(), "amount": money.Format(input.Amount), "category": input.Category})

	c.JSON(http.StatusCreated, CreateTransactionResponse{
		Transaction: transactionResponse(transaction),
		Balance:     money.Format(account.Balance),
	})
}

// GetTransactionByID handles fetching a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} EntryResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transaction/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionResponse(transaction))
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Description Delete one of the caller's transactions and reverse its effect on the balance
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} BalanceResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /del_transaction/{id} [post]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteTransaction, "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, BalanceResponse{
		Message: "Transaction deleted successfully",
		Balance: money.Format(account.Balance),
	})
}

// FilterTransactions handles filtered listing
// @Summary     Filter transactions
// @Description List transactions matching every applicable filter, newest first. A single date cannot be combined with a range.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       transactiondate      query string false "Exact date (YYYY-MM-DD); ignored when in the future"
// @Param       transactiontype      query string false "Expense or Income; other values are ignored"
// @Param       transactioncategory  query string false "Exact category name"
// @Param       transactionStartDate query string false "Range start (YYYY-MM-DD)"
// @Param       transactionEndDate   query string false "Range end (YYYY-MM-DD)"
// @Success     200 {object} EntryListResponse
// @Failure     400 {object} ErrorResponse "Malformed date or conflicting filters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /filter [get]
func (h *TransactionHandler) FilterTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	query := services.TransactionQuery{
		TypeLabel: c.Query("transactiontype"),
		Category:  c.Query("transactioncategory"),
	}
	if query.Date, err = parseQueryDate(c, "transactiondate"); err != nil {
		respondWithError(c, err)
		return
	}
	if query.StartDate, err = parseQueryDate(c, "transactionStartDate"); err != nil {
		respondWithError(c, err)
		return
	}
	if query.EndDate, err = parseQueryDate(c, "transactionEndDate"); err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.FilterTransactions(c.Request.Context(), userID, query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EntryListResponse{Transactions: transactionResponses(transactions)})
}

// GetStatistics handles the period report
// @Summary     Transaction statistics
// @Description Overall income, overall expense and per-category totals for an inclusive period. Totals are null when the period has no entries of that type.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       transaction_start_date query string true "Period start (YYYY-MM-DD)"
// @Param       transaction_end_date   query string true "Period end (YYYY-MM-DD)"
// @Success     200 {object} StatisticsResponse
// @Failure     400 {object} ErrorResponse "Missing or malformed period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transaction_statistics [get]
func (h *TransactionHandler) GetStatistics(c *gin.Context) {
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

	stats, err := h.transactionService.GetStatistics(c.Request.Context(), userID, services.DateRange{Start: start, End: end})
	if err != nil {
		respondWithError(c, err)
		return
	}

	data := totalsData(stats.Totals)
	for _, cat := range stats.Categories {
		total := money.Format(cat.Total)
		data = append(data, map[string]*string{cat.Name: &total})
	}
	c.JSON(http.StatusOK, StatisticsResponse{StatisticData: data})
}

// totalsData renders the two leading entries of a report.
func totalsData(t services.Totals) []map[string]*string {
	return []map[string]*string{
		{"overall_income": money.FormatPtr(t.Income)},
		{"overall_expense": money.FormatPtr(t.Expense)},
	}
}
