package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"homebook/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(db, user.ID)
		testutil.AssertNoError(t, err)

		if account.ID == "" {
			t.Fatal("expected non-empty account ID")
		}
		if !account.Balance.IsZero() {
			t.Errorf("expected zero balance, got %s", account.Balance)
		}
		for _, r := range account.AccountNumber {
			if r < '0' || r > '9' {
				t.Fatalf("expected numeric account number, got %q", account.AccountNumber)
			}
		}
	})

	t.Run("empty_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		_, err := svc.CreateAccount(db, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("second_account_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(db, user.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateAccount(db, user.ID)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})
}

func TestGetAccountByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user, created := testutil.CreateTestUserWithAccount(t, db, testutil.Money(t, "1000.00"))

		account, err := svc.GetAccountByOwner(ctx, user.ID)
		testutil.AssertNoError(t, err)

		if account.ID != created.ID {
			t.Errorf("expected account %s, got %s", created.ID, account.ID)
		}
		if !account.Balance.Equal(testutil.Money(t, "1000")) {
			t.Errorf("expected balance 1000.00, got %s", account.Balance)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetAccountByOwner(ctx, user.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestApplyDelta(t *testing.T) {
	t.Run("credit_and_debit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		_, account := testutil.CreateTestUserWithAccount(t, db, testutil.Money(t, "1000.00"))

		updated, err := svc.ApplyDelta(db, account.ID, testutil.Money(t, "-100.00"))
		testutil.AssertNoError(t, err)
		if !updated.Balance.Equal(testutil.Money(t, "900")) {
			t.Errorf("expected returned balance 900.00, got %s", updated.Balance)
		}
		testutil.AssertBalance(t, db, account.ID, "900.00")

		_, err = svc.ApplyDelta(db, account.ID, testutil.Money(t, "100.00"))
		testutil.AssertNoError(t, err)
		testutil.AssertBalance(t, db, account.ID, "1000.00")
	})

	t.Run("exact_cents", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		_, account := testutil.CreateTestUserWithAccount(t, db, testutil.Money(t, "0"))

		for i := 0; i < 3; i++ {
			_, err := svc.ApplyDelta(db, account.ID, testutil.Money(t, "0.10"))
			testutil.AssertNoError(t, err)
		}
		testutil.AssertBalance(t, db, account.ID, "0.30")
	})

	t.Run("may_go_negative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		_, account := testutil.CreateTestUserWithAccount(t, db, testutil.Money(t, "10.00"))

		_, err := svc.ApplyDelta(db, account.ID, testutil.Money(t, "-25.50"))
		testutil.AssertNoError(t, err)
		testutil.AssertBalance(t, db, account.ID, "-15.50")
	})

	t.Run("rolled_back_with_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		_, account := testutil.CreateTestUserWithAccount(t, db, testutil.Money(t, "50.00"))

		err := db.Transaction(func(tx *gorm.DB) error {
			if _, err := svc.ApplyDelta(tx, account.ID, testutil.Money(t, "-20.00")); err != nil {
				return err
			}
			return gorm.ErrInvalidData
		})
		if err == nil {
			t.Fatal("expected transaction error")
		}
		testutil.AssertBalance(t, db, account.ID, "50.00")
	})

	t.Run("unknown_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		_, err := svc.ApplyDelta(db, "0192f1a0-0000-7000-8000-000000000099", testutil.Money(t, "1"))
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}
