package coupon

import (
	"context"

	"github.com/go-faster/errors"
)

// Validator checks a presented coupon code for a requesting customer.
// Validation is read-only and tentative: it marks nothing used. Only
// Repository.RedeemOnce, called at confirmed payment, is authoritative.
type Validator interface {
	Validate(ctx context.Context, code, userID string) (*Coupon, error)
}

// RepoValidator implements Validator against a Repository.
type RepoValidator struct {
	repo Repository
}

// NewRepoValidator creates a RepoValidator backed by the given Repository.
func NewRepoValidator(repo Repository) *RepoValidator {
	return &RepoValidator{repo: repo}
}

// Validate looks up the code and applies the rejection checks in order:
// existence, ownership, active flag, used flag.
func (v *RepoValidator) Validate(ctx context.Context, code, userID string) (*Coupon, error) {
	c, err := v.repo.FindByCode(ctx, NormalizeCode(code))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "lookup coupon")
	}

	if c.UserID != userID {
		return nil, ErrNotOwner
	}
	if !c.Active {
		return nil, ErrInactive
	}
	if c.Used {
		return nil, ErrAlreadyUsed
	}
	return c, nil
}
