// Package split resolves raw split declarations into absolute per-user
// amounts and enforces the consistency rules between an expense amount and
// its declared shares. All functions are pure; money is handled with
// decimal arithmetic at cent precision.
package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nvenk/divvy/internal/models"
)

// Share is a split resolved to the absolute amount one user owes.
// This is the uniform representation later balance computation consumes.
type Share struct {
	// User is the email of the member who owes this amount.
	User string `json:"user"`

	// AmountOwed is the resolved monetary amount. Never negative.
	AmountOwed decimal.Decimal `json:"amount_owed"`
}

var (
	hundred = decimal.NewFromInt(100)

	// percentTolerance absorbs float noise when checking that declared
	// percentages do not exceed 100.
	percentTolerance = decimal.NewFromFloat(1e-6)

	// halfCent is the tolerance for the resolved total versus the expense
	// amount: anything inside half of the smallest monetary unit is
	// rounding noise, anything beyond it is a real mismatch.
	halfCent = decimal.New(5, -3)
)

// DuplicateUserError reports the same user appearing more than once in one
// expense's split declarations.
type DuplicateUserError struct {
	User string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("duplicate split entry for user %s", e.User)
}

// OverflowError reports declared shares claiming more than the expense
// amount allows, either as exact amounts, as percentages over 100, or as a
// combination of the two.
type OverflowError struct {
	Declared decimal.Decimal
	Limit    decimal.Decimal
	Unit     string // "amount" or "percent"
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("declared shares overflow: %s (%s) exceeds %s", e.Declared, e.Unit, e.Limit)
}

// ShortfallError reports money left unaccounted for: the resolved exact and
// percentage shares fall short of the expense amount and there are no
// equal-type entries to absorb the remainder.
type ShortfallError struct {
	Unaccounted decimal.Decimal
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("split shares leave %s unaccounted for", e.Unaccounted)
}

// Normalize validates a split declaration against the expense amount and
// resolves every entry to an absolute amount owed.
//
// An empty declaration is the explicit "no split" case and yields no shares
// and no error. Otherwise:
//
//   - exact shares are taken at cent precision (finer declarations are
//     rounded to the cent); their sum must not exceed amount
//   - percentage shares resolve to amount*share/100; the declared
//     percentages must not sum past 100. Resolution keeps full precision
//     until all consistency checks pass, then rounds to whole cents,
//     assigning leftover cents one each to the earliest percentage entries
//     in input order
//   - equal entries divide the remainder left by the other kinds; when the
//     remainder is not divisible into whole cents, the leftover cents are
//     assigned one each to the earliest equal entries in input order, so the
//     result is exact and deterministic
//
// For any accepted non-empty declaration the returned shares sum to amount
// (to the cent), every share is non-negative, and the output users are
// exactly the input users, in input order.
func Normalize(amount decimal.Decimal, splits []models.SplitItem) ([]Share, error) {
	if len(splits) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(splits))
	for _, s := range splits {
		if _, dup := seen[s.User]; dup {
			return nil, &DuplicateUserError{User: s.User}
		}
		seen[s.User] = struct{}{}
	}

	resolved := make([]decimal.Decimal, len(splits))
	var equalIdx, percentIdx []int
	exactTotal := decimal.Zero
	percentTotal := decimal.Zero
	percentRaw := decimal.Zero

	for i, s := range splits {
		switch s.Type {
		case models.SplitExact:
			v := decimal.NewFromFloat(s.Share).Round(2)
			resolved[i] = v
			exactTotal = exactTotal.Add(v)
		case models.SplitPercentage:
			p := decimal.NewFromFloat(s.Share)
			percentTotal = percentTotal.Add(p)
			// Unrounded on purpose: rounding each entry here could push
			// a valid 100% declaration past the overflow or shortfall
			// tolerance on amounts that do not divide into whole cents.
			resolved[i] = amount.Mul(p).Div(hundred)
			percentRaw = percentRaw.Add(resolved[i])
			percentIdx = append(percentIdx, i)
		case models.SplitEqual:
			equalIdx = append(equalIdx, i)
		default:
			return nil, fmt.Errorf("unknown split type %q", s.Type)
		}
	}

	if exactTotal.GreaterThan(amount) {
		return nil, &OverflowError{Declared: exactTotal, Limit: amount, Unit: "amount"}
	}
	if percentTotal.GreaterThan(hundred.Add(percentTolerance)) {
		return nil, &OverflowError{Declared: percentTotal, Limit: hundred, Unit: "percent"}
	}

	remainder := amount.Sub(exactTotal).Sub(percentRaw)

	// Exact and percentage shares may overshoot in combination even when
	// each kind is individually within bounds.
	if remainder.LessThan(halfCent.Neg()) {
		return nil, &OverflowError{Declared: amount.Sub(remainder), Limit: amount, Unit: "amount"}
	}

	if len(equalIdx) == 0 {
		if remainder.GreaterThan(halfCent) {
			return nil, &ShortfallError{Unaccounted: remainder}
		}
		// No equal entries to absorb rounding noise, so the percentage
		// shares must land the total exactly on amount.
		roundToCents(resolved, percentIdx, amount.Sub(exactTotal))
	} else {
		roundToCents(resolved, percentIdx, percentRaw)
		eqRemainder := amount.Sub(exactTotal)
		for _, idx := range percentIdx {
			eqRemainder = eqRemainder.Sub(resolved[idx])
		}
		distributeEqually(resolved, equalIdx, eqRemainder)
	}

	shares := make([]Share, len(splits))
	for i, s := range splits {
		shares[i] = Share{User: s.User, AmountOwed: resolved[i]}
	}
	return shares, nil
}

// roundToCents replaces the amounts at idxs with whole-cent values summing
// to target (rounded to the cent): each entry is floored to the cent and the
// leftover cents are assigned one each to the earliest entries in input
// order, the same tie-break distributeEqually uses.
func roundToCents(resolved []decimal.Decimal, idxs []int, target decimal.Decimal) {
	if len(idxs) == 0 {
		return
	}
	targetCents := target.Mul(hundred).Round(0).IntPart()
	floors := make([]int64, len(idxs))
	var floorSum int64
	for i, idx := range idxs {
		floors[i] = resolved[idx].Mul(hundred).Floor().IntPart()
		floorSum += floors[i]
	}
	leftover := targetCents - floorSum
	for i, idx := range idxs {
		c := floors[i]
		if leftover > 0 {
			c++
			leftover--
		}
		resolved[idx] = decimal.New(c, -2)
	}
}

// distributeEqually splits remainder across the entries at equalIdx in whole
// cents. The first remainder%n entries, in input order, receive one extra
// cent so the cent total is preserved exactly.
func distributeEqually(resolved []decimal.Decimal, equalIdx []int, remainder decimal.Decimal) {
	if remainder.IsNegative() {
		remainder = decimal.Zero // sub-cent overshoot already tolerated above
	}
	cents := remainder.Mul(hundred).Round(0).IntPart()
	n := int64(len(equalIdx))
	base := cents / n
	extra := cents % n
	for i, idx := range equalIdx {
		c := base
		if int64(i) < extra {
			c++
		}
		resolved[idx] = decimal.New(c, -2)
	}
}
