package services

import (
	"context"
	"testing"

	apperrors "homebook/internal/errors"
	"homebook/internal/models"
	"homebook/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory(ctx, "Groceries", models.TransactionTypeExpense)
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
		if cat.Type != models.TransactionTypeExpense {
			t.Errorf("expected type Expense, got %s", cat.Type)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory(ctx, "Salary", models.TransactionTypeIncome)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(ctx, "Salary", models.TransactionTypeIncome)
		testutil.AssertErrorIs(t, err, apperrors.ErrDuplicateCategory)
	})

	t.Run("names_are_case_sensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory(ctx, "food", models.TransactionTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(ctx, "Food", models.TransactionTypeExpense)
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory(ctx, "  ", models.TransactionTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory(ctx, "Odd", models.TransactionType(7))
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})
}

func TestListCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	testutil.CreateTestCategoryWithName(t, db, "Salary", models.TransactionTypeIncome)
	testutil.CreateTestCategoryWithName(t, db, "Food", models.TransactionTypeExpense)

	cats, err := svc.ListCategories(context.Background())
	testutil.AssertNoError(t, err)

	want := []string{"Food", "Salary", models.DefaultCategoryName}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, name := range want {
		if cats[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, cats[i].Name)
		}
	}
}

func TestResolveCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		food := testutil.CreateTestCategoryWithName(t, db, "Food", models.TransactionTypeExpense)

		cat, err := svc.ResolveCategory(ctx, "Food")
		testutil.AssertNoError(t, err)
		if cat.ID != food.ID {
			t.Errorf("expected category %s, got %s", food.ID, cat.ID)
		}
	})

	t.Run("by_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		food := testutil.CreateTestCategoryWithName(t, db, "Food", models.TransactionTypeExpense)

		cat, err := svc.ResolveCategory(ctx, food.ID)
		testutil.AssertNoError(t, err)
		if cat.Name != "Food" {
			t.Errorf("expected Food, got %s", cat.Name)
		}
	})

	t.Run("case_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryWithName(t, db, "Food", models.TransactionTypeExpense)

		_, err := svc.ResolveCategory(ctx, "food")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("unknown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.ResolveCategory(ctx, "Travel")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("unknown_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.ResolveCategory(ctx, "0192f1a0-0000-7000-8000-000000000099")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.ResolveCategory(ctx, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("reassigns_entries_to_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		_, account := testutil.CreateTestUserWithAccount(t, db, testutil.Money(t, "0"))
		food := testutil.CreateTestCategoryWithName(t, db, "Food", models.TransactionTypeExpense)
		txn := testutil.CreateTestTransaction(t, db, account.ID, food.ID, models.TransactionTypeExpense, "20.00", testutil.Today())
		plan := testutil.CreateTestPlannedTransaction(t, db, account.ID, food.ID, models.TransactionTypeExpense, "15.00", testutil.DaysFromToday(3))

		testutil.AssertNoError(t, svc.DeleteCategory(ctx, food.ID))

		_, err := svc.GetCategoryByID(ctx, food.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		var reloadedTxn models.Transaction
		db.First(&reloadedTxn, "id = ?", txn.ID)
		if reloadedTxn.CategoryID != models.DefaultCategoryID {
			t.Errorf("expected transaction moved to default category, got %s", reloadedTxn.CategoryID)
		}

		var reloadedPlan models.PlanningTransaction
		db.First(&reloadedPlan, "id = ?", plan.ID)
		if reloadedPlan.CategoryID != models.DefaultCategoryID {
			t.Errorf("expected plan moved to default category, got %s", reloadedPlan.CategoryID)
		}
	})

	t.Run("reassigns_deleted_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		_, account := testutil.CreateTestUserWithAccount(t, db, testutil.Money(t, "0"))
		food := testutil.CreateTestCategoryWithName(t, db, "Food", models.TransactionTypeExpense)
		txn := testutil.CreateTestTransaction(t, db, account.ID, food.ID, models.TransactionTypeExpense, "20.00", testutil.Today())
		db.Delete(txn)

		testutil.AssertNoError(t, svc.DeleteCategory(ctx, food.ID))

		var reloaded models.Transaction
		db.Unscoped().First(&reloaded, "id = ?", txn.ID)
		if reloaded.CategoryID != models.DefaultCategoryID {
			t.Errorf("expected soft-deleted transaction moved to default category, got %s", reloaded.CategoryID)
		}
	})

	t.Run("default_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		err := svc.DeleteCategory(ctx, models.DefaultCategoryID)
		testutil.AssertAppError(t, err, "DEFAULT_CATEGORY")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		err := svc.DeleteCategory(ctx, "0192f1a0-0000-7000-8000-000000000099")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("name_reusable_after_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		food := testutil.CreateTestCategoryWithName(t, db, "Food", models.TransactionTypeExpense)

		testutil.AssertNoError(t, svc.DeleteCategory(ctx, food.ID))

		_, err := svc.CreateCategory(ctx, "Food", models.TransactionTypeExpense)
		testutil.AssertNoError(t, err)
	})
}
