package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"homebook/internal/middleware"
	"homebook/internal/models"
	"homebook/internal/pagination"
	"homebook/internal/services"
	"homebook/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	registerFn     func(ctx context.Context, username, password string) (*models.User, *models.Account, error)
	attemptLoginFn func(ctx context.Context, username, password string) (*models.User, error)
	getUserByIDFn  func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockUserService) Register(ctx context.Context, username, password string) (*models.User, *models.Account, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, password)
	}
	return &models.User{}, &models.Account{}, nil
}

func (m *mockUserService) AttemptLogin(ctx context.Context, username, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(ctx, username, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return &models.User{}, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

type mockAccountService struct {
	getAccountByOwnerFn func(ctx context.Context, ownerID string) (*models.Account, error)
}

func (m *mockAccountService) CreateAccount(_ *gorm.DB, ownerID string) (*models.Account, error) {
	return &models.Account{OwnerID: ownerID}, nil
}

func (m *mockAccountService) GetAccountByOwner(ctx context.Context, ownerID string) (*models.Account, error) {
	if m.getAccountByOwnerFn != nil {
		return m.getAccountByOwnerFn(ctx, ownerID)
	}
	return &models.Account{OwnerID: ownerID}, nil
}

func (m *mockAccountService) LockAccountByOwner(_ *gorm.DB, ownerID string) (*models.Account, error) {
	return &models.Account{OwnerID: ownerID}, nil
}

func (m *mockAccountService) ApplyDelta(_ *gorm.DB, accountID string, delta decimal.Decimal) (*models.Account, error) {
	return &models.Account{Base: models.Base{ID: accountID}, Balance: delta}, nil
}

var _ services.AccountServicer = (*mockAccountService)(nil)

type mockCategoryService struct {
	createCategoryFn func(ctx context.Context, name string, t models.TransactionType) (*models.Category, error)
	listCategoriesFn func(ctx context.Context) ([]models.Category, error)
	deleteCategoryFn func(ctx context.Context, id string) error
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, name string, t models.TransactionType) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, name, t)
	}
	return &models.Category{Name: name, Type: t}, nil
}

func (m *mockCategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(ctx)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(_ context.Context, id string) (*models.Category, error) {
	return &models.Category{Base: models.Base{ID: id}}, nil
}

func (m *mockCategoryService) FindCategoryByName(_ context.Context, name string) (*models.Category, error) {
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) ResolveCategory(_ context.Context, ref string) (*models.Category, error) {
	return &models.Category{Name: ref}, nil
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(ctx, id)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

type mockTransactionService struct {
	createTransactionFn  func(ctx context.Context, ownerID string, input services.TransactionInput) (*models.Transaction, *models.Account, error)
	deleteTransactionFn  func(ctx context.Context, ownerID, transactionID string) (*models.Account, error)
	getTransactionByIDFn func(ctx context.Context, ownerID, transactionID string) (*models.Transaction, error)
	getLatestFn          func(ctx context.Context, ownerID string, limit int) ([]models.Transaction, error)
	filterFn             func(ctx context.Context, ownerID string, query services.TransactionQuery) ([]models.Transaction, error)
	getStatisticsFn      func(ctx context.Context, ownerID string, period services.DateRange) (*services.Statistics, error)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, ownerID string, input services.TransactionInput) (*models.Transaction, *models.Account, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(ctx, ownerID, input)
	}
	return &models.Transaction{}, &models.Account{}, nil
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) (*models.Account, error) {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(ctx, ownerID, transactionID)
	}
	return &models.Account{}, nil
}

func (m *mockTransactionService) GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(ctx, ownerID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetLatestTransactions(ctx context.Context, ownerID string, limit int) ([]models.Transaction, error) {
	if m.getLatestFn != nil {
		return m.getLatestFn(ctx, ownerID, limit)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) FilterTransactions(ctx context.Context, ownerID string, query services.TransactionQuery) ([]models.Transaction, error) {
	if m.filterFn != nil {
		return m.filterFn(ctx, ownerID, query)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetStatistics(ctx context.Context, ownerID string, period services.DateRange) (*services.Statistics, error) {
	if m.getStatisticsFn != nil {
		return m.getStatisticsFn(ctx, ownerID, period)
	}
	return &services.Statistics{Categories: []services.CategoryTotal{}}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockPlannedService struct {
	createFn     func(ctx context.Context, ownerID string, input services.TransactionInput) (*models.PlanningTransaction, error)
	deleteFn     func(ctx context.Context, ownerID, planID string) error
	listFn       func(ctx context.Context, ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.PlanningTransaction], error)
	statisticsFn func(ctx context.Context, ownerID string, period services.DateRange) (*services.Totals, error)
}

func (m *mockPlannedService) CreatePlannedTransaction(ctx context.Context, ownerID string, input services.TransactionInput) (*models.PlanningTransaction, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, input)
	}
	return &models.PlanningTransaction{}, nil
}

func (m *mockPlannedService) DeletePlannedTransaction(ctx context.Context, ownerID, planID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, planID)
	}
	return nil
}

func (m *mockPlannedService) GetPlannedTransactions(ctx context.Context, ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.PlanningTransaction], error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID, page)
	}
	resp := pagination.NewPageResponse([]models.PlanningTransaction{}, page.Normalize(), 0)
	return &resp, nil
}

func (m *mockPlannedService) GetPlannedStatistics(ctx context.Context, ownerID string, period services.DateRange) (*services.Totals, error) {
	if m.statisticsFn != nil {
		return m.statisticsFn(ctx, ownerID, period)
	}
	return &services.Totals{}, nil
}

var _ services.PlannedTransactionServicer = (*mockPlannedService)(nil)

type auditCall struct {
	userID, action, resourceType, resourceID string
}

type mockAuditService struct {
	calls []auditCall
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, _ map[string]interface{}) {
	m.calls = append(m.calls, auditCall{userID, action, resourceType, resourceID})
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

const (
	testUserID = "0192f1a0-0000-7000-8000-000000000001"
	testTxID   = "0192f1a0-0000-7000-8000-0000000000aa"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
