package memory

import (
	"context"
	"sort"

	"github.com/osse101/Huanyu_Go/internal/domain"
)

func (v *view) IsAdmin(ctx context.Context, accountID string) (bool, error) {
	defer v.lock()()
	_, ok := v.state().admins[accountID]
	return ok, nil
}

// GrantAdmin is idempotent
func (v *view) GrantAdmin(ctx context.Context, accountID, grantedBy string) error {
	defer v.lock()()
	if err := v.fault(OpGrantAdmin); err != nil {
		return err
	}
	st := v.state()
	if _, ok := st.accounts[accountID]; !ok {
		return domain.ErrAccountNotFound
	}
	if _, ok := st.admins[accountID]; ok {
		return nil
	}
	st.admins[accountID] = domain.AdminGrant{
		AccountID: accountID,
		GrantedBy: grantedBy,
		CreatedAt: v.s.now(),
	}
	return nil
}

func (v *view) RevokeAdmin(ctx context.Context, accountID string) error {
	defer v.lock()()
	if err := v.fault(OpRevokeAdmin); err != nil {
		return err
	}
	delete(v.state().admins, accountID)
	return nil
}

// ListAdmins returns grants oldest first
func (v *view) ListAdmins(ctx context.Context) ([]domain.AdminGrant, error) {
	defer v.lock()()
	st := v.state()
	out := make([]domain.AdminGrant, 0, len(st.admins))
	for _, g := range st.admins {
		if a, ok := st.accounts[g.AccountID]; ok {
			g.Username = a.Username
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
