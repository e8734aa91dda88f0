package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService is plain CRUD over expense records. Refund Loss expenses
// are additionally created by the ledger on refund; they live in the same
// collection and are not distinguishable beyond their category.
type ExpenseService interface {
	ListExpenses(ctx context.Context) ([]Expense, error)
	CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error)
	// UpdateExpense replaces all editable fields. Unknown ids are a no-op
	// returning (nil, nil).
	UpdateExpense(ctx context.Context, id string, in ExpenseInput) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

type ExpenseInput struct {
	Category    ExpenseCategory
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

type expenses struct {
	store *Store
}

func NewExpenses(store *Store) ExpenseService {
	return &expenses{store: store}
}

func (e *expenses) ListExpenses(_ context.Context) ([]Expense, error) {
	var out []Expense
	e.store.View(func(st *State) {
		out = append(out, st.Expenses...)
	})
	return out, nil
}

func (e *expenses) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	expense := Expense{
		ID:          uuid.NewString(),
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	err := e.store.Update(ctx, func(st *State) error {
		st.Expenses = append([]Expense{expense}, st.Expenses...)
		st.MarkDirty(KeyExpenses)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (e *expenses) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (*Expense, error) {
	var updated *Expense
	err := e.store.Update(ctx, func(st *State) error {
		for i := range st.Expenses {
			if st.Expenses[i].ID == id {
				st.Expenses[i].Category = in.Category
				st.Expenses[i].Description = in.Description
				st.Expenses[i].Amount = in.Amount
				st.Expenses[i].Date = in.Date
				st.MarkDirty(KeyExpenses)
				cp := st.Expenses[i]
				updated = &cp
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (e *expenses) DeleteExpense(ctx context.Context, id string) error {
	return e.store.Update(ctx, func(st *State) error {
		for i := range st.Expenses {
			if st.Expenses[i].ID == id {
				st.Expenses = append(st.Expenses[:i], st.Expenses[i+1:]...)
				st.MarkDirty(KeyExpenses)
				return nil
			}
		}
		return nil
	})
}
