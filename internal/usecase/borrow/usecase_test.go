package borrow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainBorrow "stockroom-backend/internal/domain/borrow"
	domainItem "stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/testutil/clockmock"
	"stockroom-backend/internal/testutil/memuow"
	"stockroom-backend/internal/usecase/stock"
)

const userID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func intp(v int) *int { return &v }

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t.UTC()
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func fixture(t *testing.T, clk clockmock.Fixed, it domainItem.Item) (*Usecase, *memuow.Store, domainItem.Item) {
	t.Helper()
	store := memuow.New()
	seeded := store.AddItem(it)
	repos := store.Repos()
	uc := NewUsecase(repos.Items, repos.Borrows, store, stock.NewLedger(nil), clk)
	return uc, store, seeded
}

func lendableItem() domainItem.Item {
	return domainItem.Item{
		ItemID:         strings.Repeat("a", 32),
		Mode:           domainItem.ModeBorrowable,
		ItemType:       domainItem.TypeEquipment,
		Title:          "Oscilloscope",
		TotalStock:     5,
		AvailableStock: 3, // 2 out on the open loan below
		MaxBorrowDays:  intp(14),
		RenewableCount: intp(2),
		LateFeePerDay:  decimal.NewFromInt(10),
	}
}

func openLoan(store *memuow.Store, it domainItem.Item, qty int, due *time.Time) domainBorrow.Transaction {
	return store.AddBorrow(domainBorrow.Transaction{
		TransactionID:     strings.Repeat("e", 32),
		RequestID:         999,
		ItemID:            it.ID,
		UserID:            userID,
		Quantity:          qty,
		Status:            domainBorrow.StatusBorrowed,
		BorrowedDate:      ts("2024-01-01T09:00:00Z"),
		DueDate:           due,
		ConditionOnBorrow: domainBorrow.ConditionGood,
		LateFee:           decimal.Zero,
		DamageFee:         decimal.Zero,
		TotalFee:          decimal.Zero,
	})
}

// ----- renew -----

func TestRenew_ExtendsFromDueDate(t *testing.T) {
	clk := clockmock.At("2024-01-05T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 2, tsp("2024-01-15T09:00:00Z"))

	dto, err := uc.Renew(context.Background(), txn.TransactionID)
	if err != nil {
		t.Fatalf("Renew err: %v", err)
	}
	if dto.RenewalCount != 1 {
		t.Fatalf("renewalCount = %d, want 1", dto.RenewalCount)
	}
	want := ts("2024-01-29T09:00:00Z") // due + 14 days
	if dto.ExtendedUntil == nil || !dto.ExtendedUntil.Equal(want) {
		t.Fatalf("extendedUntil = %v, want %v", dto.ExtendedUntil, want)
	}
}

func TestRenew_ExtendsFromPriorExtension(t *testing.T) {
	clk := clockmock.At("2024-01-05T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 1, tsp("2024-01-15T09:00:00Z"))

	if _, err := uc.Renew(context.Background(), txn.TransactionID); err != nil {
		t.Fatalf("first Renew err: %v", err)
	}
	dto, err := uc.Renew(context.Background(), txn.TransactionID)
	if err != nil {
		t.Fatalf("second Renew err: %v", err)
	}
	want := ts("2024-02-12T09:00:00Z") // due + 14 + 14 days
	if dto.ExtendedUntil == nil || !dto.ExtendedUntil.Equal(want) {
		t.Fatalf("extendedUntil = %v, want %v", dto.ExtendedUntil, want)
	}
}

func TestRenew_QuotaExceeded(t *testing.T) {
	clk := clockmock.At("2024-01-05T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem()) // renewableCount = 2
	txn := openLoan(store, it, 1, tsp("2024-01-15T09:00:00Z"))

	for i := 0; i < 2; i++ {
		if _, err := uc.Renew(context.Background(), txn.TransactionID); err != nil {
			t.Fatalf("Renew %d err: %v", i+1, err)
		}
	}
	_, err := uc.Renew(context.Background(), txn.TransactionID)
	if !errors.Is(err, domainBorrow.ErrRenewalLimit) {
		t.Fatalf("err = %v, want ErrRenewalLimit", err)
	}
}

func TestRenew_UnlimitedQuotaNeverBlocks(t *testing.T) {
	it := lendableItem()
	it.RenewableCount = nil
	clk := clockmock.At("2024-01-05T09:00:00Z")
	uc, store, seeded := fixture(t, clk, it)
	txn := openLoan(store, seeded, 1, tsp("2024-01-15T09:00:00Z"))

	for i := 0; i < 5; i++ {
		if _, err := uc.Renew(context.Background(), txn.TransactionID); err != nil {
			t.Fatalf("Renew %d err: %v", i+1, err)
		}
	}
}

func TestRenew_OverdueStillAllowed(t *testing.T) {
	clk := clockmock.At("2024-02-01T09:00:00Z") // well past due
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 1, tsp("2024-01-15T09:00:00Z"))

	if _, err := uc.Renew(context.Background(), txn.TransactionID); err != nil {
		t.Fatalf("overdue loan must still renew, err: %v", err)
	}
}

func TestRenew_NoDueDateBookkeepingOnly(t *testing.T) {
	it := lendableItem()
	it.MaxBorrowDays = nil
	clk := clockmock.At("2024-01-05T09:00:00Z")
	uc, store, seeded := fixture(t, clk, it)
	txn := openLoan(store, seeded, 1, nil)

	dto, err := uc.Renew(context.Background(), txn.TransactionID)
	if err != nil {
		t.Fatalf("Renew err: %v", err)
	}
	if dto.RenewalCount != 1 {
		t.Fatalf("renewalCount = %d, want 1", dto.RenewalCount)
	}
	if dto.DueDate != nil || dto.ExtendedUntil != nil {
		t.Fatalf("dates must stay nil, got due=%v ext=%v", dto.DueDate, dto.ExtendedUntil)
	}
}

func TestRenew_PolicyAddedAfterApproval(t *testing.T) {
	clk := clockmock.At("2024-01-05T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem()) // 14-day policy
	txn := openLoan(store, it, 1, nil)               // approved while the period was unlimited

	dto, err := uc.Renew(context.Background(), txn.TransactionID)
	if err != nil {
		t.Fatalf("Renew err: %v", err)
	}
	want := ts("2024-01-19T09:00:00Z") // clock starts at the renewal
	if dto.ExtendedUntil == nil || !dto.ExtendedUntil.Equal(want) {
		t.Fatalf("extendedUntil = %v, want %v", dto.ExtendedUntil, want)
	}
	if dto.DueDate != nil {
		t.Fatalf("dueDate = %v, original terms must stay on record", dto.DueDate)
	}
}

func TestRenew_ReturnedConflicts(t *testing.T) {
	clk := clockmock.At("2024-01-05T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 1, tsp("2024-01-15T09:00:00Z"))

	if _, err := uc.CheckIn(context.Background(), CheckInInput{
		TransactionID: txn.TransactionID, ConditionOnReturn: domainBorrow.ConditionGood, DamageFee: decimal.Zero,
	}); err != nil {
		t.Fatalf("CheckIn err: %v", err)
	}
	_, err := uc.Renew(context.Background(), txn.TransactionID)
	if !errors.Is(err, domainBorrow.ErrStateConflict) {
		t.Fatalf("err = %v, want ErrStateConflict", err)
	}
}

// ----- check-in -----

func TestCheckIn_OnTime(t *testing.T) {
	clk := clockmock.At("2024-01-10T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 2, tsp("2024-01-15T09:00:00Z"))

	res, err := uc.CheckIn(context.Background(), CheckInInput{
		TransactionID:     txn.TransactionID,
		ConditionOnReturn: domainBorrow.ConditionGood,
		DamageFee:         decimal.Zero,
	})
	if err != nil {
		t.Fatalf("CheckIn err: %v", err)
	}
	if res.Fees.LateDays != 0 || !res.Fees.TotalFee.IsZero() {
		t.Fatalf("fees = %+v, want zero", res.Fees)
	}
	got, _ := store.ItemByID(it.ID)
	if got.AvailableStock != 5 || got.TotalStock != 5 {
		t.Fatalf("counters = %d/%d, want 5/5 (available restored, total untouched)", got.AvailableStock, got.TotalStock)
	}
	if res.Transaction.Status != string(domainBorrow.StatusReturned) {
		t.Fatalf("status = %s, want returned", res.Transaction.Status)
	}
	if res.Transaction.FeePaid {
		t.Fatal("feePaid must start false; collection is external")
	}
}

func TestCheckIn_LateWithDamage(t *testing.T) {
	clk := clockmock.At("2024-01-13T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 1, tsp("2024-01-10T09:00:00Z"))

	res, err := uc.CheckIn(context.Background(), CheckInInput{
		TransactionID:     txn.TransactionID,
		ConditionOnReturn: domainBorrow.ConditionDamaged,
		DamageFee:         decimal.NewFromInt(50),
		Notes:             "cracked screen",
	})
	if err != nil {
		t.Fatalf("CheckIn err: %v", err)
	}
	if res.Fees.LateDays != 3 {
		t.Fatalf("lateDays = %d, want 3", res.Fees.LateDays)
	}
	if !res.Fees.LateFee.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("lateFee = %s, want 30", res.Fees.LateFee)
	}
	if !res.Fees.TotalFee.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("totalFee = %s, want 80", res.Fees.TotalFee)
	}
}

func TestCheckIn_UsesExtensionAsEffectiveDueDate(t *testing.T) {
	clk := clockmock.At("2024-01-16T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := store.AddBorrow(domainBorrow.Transaction{
		TransactionID: strings.Repeat("e", 32), RequestID: 999, ItemID: it.ID, UserID: userID,
		Quantity: 1, Status: domainBorrow.StatusBorrowed,
		BorrowedDate: ts("2024-01-01T09:00:00Z"),
		DueDate:      tsp("2024-01-10T09:00:00Z"),
		ExtendedUntil: tsp("2024-01-20T09:00:00Z"),
		ConditionOnBorrow: domainBorrow.ConditionGood,
		LateFee:           decimal.Zero, DamageFee: decimal.Zero, TotalFee: decimal.Zero,
	})

	res, err := uc.CheckIn(context.Background(), CheckInInput{
		TransactionID: txn.TransactionID, ConditionOnReturn: domainBorrow.ConditionGood, DamageFee: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("CheckIn err: %v", err)
	}
	if res.Fees.LateDays != 0 {
		t.Fatalf("lateDays = %d, extension must defer the due date", res.Fees.LateDays)
	}
}

func TestCheckIn_LostOnlyRestoresAvailable(t *testing.T) {
	clk := clockmock.At("2024-01-10T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 2, tsp("2024-01-15T09:00:00Z"))

	if _, err := uc.CheckIn(context.Background(), CheckInInput{
		TransactionID: txn.TransactionID, ConditionOnReturn: domainBorrow.ConditionLost, DamageFee: decimal.NewFromInt(200),
	}); err != nil {
		t.Fatalf("CheckIn err: %v", err)
	}
	got, _ := store.ItemByID(it.ID)
	// total is not reduced for lost items; reconciliation happens through a
	// catalog stock adjustment
	if got.AvailableStock != 5 || got.TotalStock != 5 {
		t.Fatalf("counters = %d/%d, want 5/5", got.AvailableStock, got.TotalStock)
	}
}

func TestCheckIn_SecondCallConflicts(t *testing.T) {
	clk := clockmock.At("2024-01-10T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 2, tsp("2024-01-15T09:00:00Z"))
	in := CheckInInput{TransactionID: txn.TransactionID, ConditionOnReturn: domainBorrow.ConditionGood, DamageFee: decimal.Zero}

	if _, err := uc.CheckIn(context.Background(), in); err != nil {
		t.Fatalf("first CheckIn err: %v", err)
	}
	_, err := uc.CheckIn(context.Background(), in)
	if !errors.Is(err, domainBorrow.ErrStateConflict) {
		t.Fatalf("second CheckIn err = %v, want ErrStateConflict", err)
	}
	got, _ := store.ItemByID(it.ID)
	if got.AvailableStock != 5 {
		t.Fatalf("available = %d, stock must be credited exactly once", got.AvailableStock)
	}
}

func TestCheckIn_InvalidInputs(t *testing.T) {
	clk := clockmock.At("2024-01-10T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	txn := openLoan(store, it, 1, tsp("2024-01-15T09:00:00Z"))

	if _, err := uc.CheckIn(context.Background(), CheckInInput{
		TransactionID: txn.TransactionID, ConditionOnReturn: "pristine", DamageFee: decimal.Zero,
	}); err == nil {
		t.Fatal("want error for unknown condition")
	}
	if _, err := uc.CheckIn(context.Background(), CheckInInput{
		TransactionID: txn.TransactionID, ConditionOnReturn: domainBorrow.ConditionGood, DamageFee: decimal.NewFromInt(-1),
	}); err == nil {
		t.Fatal("want error for negative damage fee")
	}
}

// ----- list -----

func TestList_OverdueOnly(t *testing.T) {
	clk := clockmock.At("2024-01-20T09:00:00Z")
	uc, store, it := fixture(t, clk, lendableItem())
	overdue := openLoan(store, it, 1, tsp("2024-01-15T09:00:00Z"))
	store.AddBorrow(domainBorrow.Transaction{
		TransactionID: strings.Repeat("f", 32), RequestID: 998, ItemID: it.ID, UserID: userID,
		Quantity: 1, Status: domainBorrow.StatusBorrowed,
		BorrowedDate: ts("2024-01-18T09:00:00Z"), DueDate: tsp("2024-02-01T09:00:00Z"),
		ConditionOnBorrow: domainBorrow.ConditionGood,
		LateFee:           decimal.Zero, DamageFee: decimal.Zero, TotalFee: decimal.Zero,
	})

	out, err := uc.List(context.Background(), ListInput{OverdueOnly: true})
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].TransactionID != overdue.TransactionID {
		t.Fatalf("got %s, want the overdue loan", out[0].TransactionID)
	}
	if out[0].Status != "overdue" {
		t.Fatalf("status = %s, want derived overdue", out[0].Status)
	}
}
