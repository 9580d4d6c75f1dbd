package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homebook/internal/services"
)

// AccountHandler serves the caller's account and its recent history.
type AccountHandler struct {
	accountService     services.AccountServicer
	transactionService services.TransactionServicer
	latestLimit        int
}

// NewAccountHandler creates a new AccountHandler. latestLimit is the number
// of entries /latest returns.
func NewAccountHandler(accountService services.AccountServicer, transactionService services.TransactionServicer, latestLimit int) *AccountHandler {
	return &AccountHandler{
		accountService:     accountService,
		transactionService: transactionService,
		latestLimit:        latestLimit,
	}
}

// LatestResponse is the caller's balance together with the newest entries.
type LatestResponse struct {
	AccountResponse
	Data []EntryResponse `json:"data"`
}

// GetAccount returns the caller's account number and balance
// @Summary     Get account
// @Description Get the authenticated user's account number and current balance
// @Tags        account
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} AccountResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /account [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByOwner(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, accountResponse(account))
}

// GetLatest returns the most recent transactions
// @Summary     Latest transactions
// @Description Get the balance and the most recent transactions, newest first
// @Tags        account
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} LatestResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /latest [get]
func (h *AccountHandler) GetLatest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	account, err := h.accountService.GetAccountByOwner(ctx, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetLatestTransactions(ctx, userID, h.latestLimit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, LatestResponse{
		AccountResponse: accountResponse(account),
		Data:            transactionResponses(transactions),
	})
}
