package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "homebook/internal/errors"
	"homebook/internal/models"
	"homebook/internal/testutil"
)

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/account", handler.GetAccount)
	auth.GET("/latest", handler.GetLatest)
	return r
}

func TestAccountHandler_GetAccount(t *testing.T) {
	t.Run("returns number and balance", func(t *testing.T) {
		accountSvc := &mockAccountService{
			getAccountByOwnerFn: func(_ context.Context, _ string) (*models.Account, error) {
				return &models.Account{AccountNumber: "0000012345", Balance: decimal.RequireFromString("1000")}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(accountSvc, &mockTransactionService{}, 10))

		rec := doRequest(r, "GET", "/account", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["balance"] != "1000.00" {
			t.Errorf("expected balance 1000.00, got %v", result["balance"])
		}
		if result["account_number"] != "0000012345" {
			t.Errorf("unexpected account number %v", result["account_number"])
		}
	})

	t.Run("returns 404 without account", func(t *testing.T) {
		accountSvc := &mockAccountService{
			getAccountByOwnerFn: func(_ context.Context, _ string) (*models.Account, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		r := setupAccountRouter(NewAccountHandler(accountSvc, &mockTransactionService{}, 10))

		rec := doRequest(r, "GET", "/account", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_NOT_FOUND")
	})
}

func TestAccountHandler_GetLatest(t *testing.T) {
	t.Run("passes configured limit", func(t *testing.T) {
		var gotLimit int
		txSvc := &mockTransactionService{
			getLatestFn: func(_ context.Context, _ string, limit int) ([]models.Transaction, error) {
				gotLimit = limit
				return []models.Transaction{
					{
						Base:     models.Base{ID: testTxID},
						Type:     models.TransactionTypeExpense,
						Date:     testutil.Today(),
						Amount:   decimal.RequireFromString("12.5"),
						Category: &models.Category{Name: "Food"},
						Comment:  "lunch",
					},
				}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}, txSvc, 7))

		rec := doRequest(r, "GET", "/latest", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotLimit != 7 {
			t.Errorf("expected limit 7, got %d", gotLimit)
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(data))
		}
		entry := data[0].(map[string]interface{})
		if entry["amount"] != "12.50" || entry["type"] != "Expense" || entry["category"] != "Food" {
			t.Errorf("unexpected entry %v", entry)
		}
		if entry["date"] != testutil.Today().Format("2006-01-02") {
			t.Errorf("unexpected date %v", entry["date"])
		}
		if result["balance"] != "0.00" {
			t.Errorf("expected balance 0.00, got %v", result["balance"])
		}
	})
}
