package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nvenk/divvy/internal/docstore"
	"github.com/nvenk/divvy/internal/models"
	"github.com/nvenk/divvy/internal/split"
)

// ExpenseService handles expense recording and lookup.
type ExpenseService struct {
	store docstore.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store docstore.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseRequest is the payload for recording an expense.
type CreateExpenseRequest struct {
	GroupID     string             `json:"group_id"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	Currency    string             `json:"currency"`
	PaidBy      string             `json:"paid_by"`
	Date        *time.Time         `json:"date"`
	Splits      []models.SplitItem `json:"splits"`
	Notes       string             `json:"notes"`
}

// CreatedExpense is the result of recording an expense: the stored id plus
// the splits resolved to absolute amounts.
type CreatedExpense struct {
	ID     string        `json:"id"`
	Shares []split.Share `json:"normalized_splits"`
}

// storedExpense is the persisted document shape: the expense fields plus the
// normalized shares, so later balance computation reads a uniform unit.
type storedExpense struct {
	models.Expense
	NormalizedSplits []split.Share `json:"normalized_splits,omitempty"`
}

// Create validates an expense, resolves its split declaration, and persists
// both. The referenced group must exist; a blank currency falls back to the
// group's default. Membership of paid_by and split users is not enforced,
// and neither is currency agreement with the group; both are logged when
// they look off so the gap is visible without rejecting the request.
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*CreatedExpense, error) {
	group, err := s.store.GetDocument(ctx, CollectionGroup, req.GroupID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, models.NewValidationError("group_id", "must reference an existing group")
		}
		slog.Error("CreateExpense: group lookup failed", "group_id", req.GroupID, "error", err)
		return nil, storeErr(err)
	}

	groupCurrency, _ := group.Fields["default_currency"].(string)
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = groupCurrency
	}

	// A declaration without an explicit kind is an equal split.
	for i := range req.Splits {
		if req.Splits[i].Type == "" {
			req.Splits[i].Type = models.SplitEqual
		}
	}

	expense := models.Expense{
		GroupID:     req.GroupID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		PaidBy:      req.PaidBy,
		Date:        req.Date,
		Splits:      req.Splits,
		Notes:       req.Notes,
	}
	if err := models.Validate(expense); err != nil {
		return nil, err
	}

	shares, err := split.Normalize(decimal.NewFromFloat(expense.Amount), expense.Splits)
	if err != nil {
		return nil, err
	}

	flagSuspectReferences(group, &expense)

	id, err := s.store.CreateDocument(ctx, CollectionExpense, storedExpense{
		Expense:          expense,
		NormalizedSplits: shares,
	})
	if err != nil {
		slog.Error("CreateExpense failed", "group_id", req.GroupID, "error", err)
		return nil, storeErr(err)
	}

	slog.Info("Expense created",
		"expense_id", id,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
		"splits_count", len(expense.Splits),
	)
	return &CreatedExpense{ID: id, Shares: shares}, nil
}

// List returns all expenses, optionally restricted to one group.
func (s *ExpenseService) List(ctx context.Context, groupID string) ([]docstore.Document, error) {
	var filter docstore.Filter
	if groupID != "" {
		filter = docstore.Filter{"group_id": docstore.Eq(groupID)}
	}

	docs, err := s.store.GetDocuments(ctx, CollectionExpense, filter)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", groupID, "error", err)
		return nil, storeErr(err)
	}
	return docs, nil
}

// flagSuspectReferences logs expense fields that reference outside the
// group: a non-member payer or split user, or a currency differing from the
// group default. These stay warnings, not rejections.
func flagSuspectReferences(group *docstore.Document, expense *models.Expense) {
	members := make(map[string]struct{})
	if raw, ok := group.Fields["members"].([]any); ok {
		for _, m := range raw {
			if email, ok := m.(string); ok {
				members[email] = struct{}{}
			}
		}
	}

	if _, ok := members[expense.PaidBy]; !ok {
		slog.Warn("Expense payer is not a group member",
			"group_id", expense.GroupID, "paid_by", expense.PaidBy)
	}
	for _, item := range expense.Splits {
		if _, ok := members[item.User]; !ok {
			slog.Warn("Split user is not a group member",
				"group_id", expense.GroupID, "user", item.User)
		}
	}

	if groupCurrency, ok := group.Fields["default_currency"].(string); ok && groupCurrency != expense.Currency {
		slog.Warn("Expense currency differs from group default",
			"group_id", expense.GroupID,
			"expense_currency", expense.Currency,
			"group_currency", groupCurrency)
	}
}
