// Package admin is the permission gate. It knows two privilege tiers: one
// super-admin fixed by configuration, and delegated admins stored as grants.
package admin

import (
	"context"
	"fmt"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// Repository is the data access the gate needs
type Repository interface {
	repository.Accounts
	repository.Roles
}

// Service defines permission checks and account moderation
type Service interface {
	Role(ctx context.Context, accountID string) (domain.Role, error)
	Ban(ctx context.Context, actorID, targetID string) error
	Unban(ctx context.Context, actorID, targetID string) error
	Promote(ctx context.Context, actorID, targetID string) error
	Demote(ctx context.Context, actorID, targetID string) error
	ListAdmins(ctx context.Context, actorID string) ([]domain.AdminGrant, error)
	CanWithdraw(ctx context.Context, actorID string, listing *domain.Listing) error
	CanForfeit(ctx context.Context, actorID string, listing *domain.Listing) error
	CanRestock(ctx context.Context, actorID string) error
	CanReadJournal(ctx context.Context, actorID string) error
}

type service struct {
	repo         Repository
	superAdminID string
}

// NewService creates the gate. An empty superAdminID means no account holds
// the super-admin tier.
func NewService(repo Repository, superAdminID string) Service {
	return &service{repo: repo, superAdminID: superAdminID}
}

func (s *service) Role(ctx context.Context, accountID string) (domain.Role, error) {
	if s.superAdminID != "" && accountID == s.superAdminID {
		return domain.RoleSuperAdmin, nil
	}
	isAdmin, err := s.repo.IsAdmin(ctx, accountID)
	if err != nil {
		return domain.RolePlayer, fmt.Errorf(ErrMsgResolveRoleFailed, accountID, err)
	}
	if isAdmin {
		return domain.RoleAdmin, nil
	}
	return domain.RolePlayer, nil
}

// actorRole loads the actor, rejects banned actors and returns their tier
func (s *service) actorRole(ctx context.Context, actorID string) (domain.Role, error) {
	actor, err := s.repo.GetAccount(ctx, actorID)
	if err != nil {
		return domain.RolePlayer, fmt.Errorf(ErrMsgLoadAccountFailed, actorID, err)
	}
	if actor.IsBanned {
		return domain.RolePlayer, fmt.Errorf(ErrMsgActorBannedFmt, domain.ErrPermissionDenied, domain.ErrAccountBanned, actorID)
	}
	return s.Role(ctx, actorID)
}

// canModerate: the super-admin may act on anyone but itself, a delegated
// admin only on plain players.
func (s *service) canModerate(ctx context.Context, actorID, targetID, action string) error {
	if actorID == targetID {
		return fmt.Errorf(ErrMsgSelfActionFmt, domain.ErrPermissionDenied, action)
	}
	actorRole, err := s.actorRole(ctx, actorID)
	if err != nil {
		return err
	}
	if _, err := s.repo.GetAccount(ctx, targetID); err != nil {
		return fmt.Errorf(ErrMsgLoadAccountFailed, targetID, err)
	}
	targetRole, err := s.Role(ctx, targetID)
	if err != nil {
		return err
	}

	switch {
	case targetRole == domain.RoleSuperAdmin:
	case actorRole == domain.RoleSuperAdmin:
		return nil
	case actorRole == domain.RoleAdmin && targetRole == domain.RolePlayer:
		return nil
	}
	return fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrPermissionDenied, actorRole, action, targetRole)
}

func (s *service) Ban(ctx context.Context, actorID, targetID string) error {
	return s.setBanned(ctx, actorID, targetID, true)
}

func (s *service) Unban(ctx context.Context, actorID, targetID string) error {
	return s.setBanned(ctx, actorID, targetID, false)
}

func (s *service) setBanned(ctx context.Context, actorID, targetID string, banned bool) error {
	action, logMsg := ActionBan, LogMsgAccountBanned
	if !banned {
		action, logMsg = ActionUnban, LogMsgAccountUnbanned
	}
	if err := s.canModerate(ctx, actorID, targetID, action); err != nil {
		return err
	}
	if err := s.repo.SetBanned(ctx, targetID, banned); err != nil {
		return fmt.Errorf(ErrMsgSetBannedFailed, targetID, err)
	}
	logger.FromContext(ctx).Info(logMsg, "actor_id", actorID, "target_id", targetID)
	return nil
}

// Promote and Demote are reserved to the super-admin
func (s *service) Promote(ctx context.Context, actorID, targetID string) error {
	if err := s.requireSuperAdmin(ctx, actorID, ActionPromote); err != nil {
		return err
	}
	if err := s.canModerate(ctx, actorID, targetID, ActionPromote); err != nil {
		return err
	}
	isAdmin, err := s.repo.IsAdmin(ctx, targetID)
	if err != nil {
		return fmt.Errorf(ErrMsgResolveRoleFailed, targetID, err)
	}
	if isAdmin {
		return fmt.Errorf(ErrMsgAlreadyAdminFmt, domain.ErrInvalidInput, targetID)
	}
	if err := s.repo.GrantAdmin(ctx, targetID, actorID); err != nil {
		return fmt.Errorf(ErrMsgGrantFailed, targetID, err)
	}
	logger.FromContext(ctx).Info(LogMsgAdminGranted, "actor_id", actorID, "target_id", targetID)
	return nil
}

func (s *service) Demote(ctx context.Context, actorID, targetID string) error {
	if err := s.requireSuperAdmin(ctx, actorID, ActionDemote); err != nil {
		return err
	}
	if err := s.canModerate(ctx, actorID, targetID, ActionDemote); err != nil {
		return err
	}
	isAdmin, err := s.repo.IsAdmin(ctx, targetID)
	if err != nil {
		return fmt.Errorf(ErrMsgResolveRoleFailed, targetID, err)
	}
	if !isAdmin {
		return fmt.Errorf(ErrMsgNotAdminFmt, domain.ErrInvalidInput, targetID)
	}
	if err := s.repo.RevokeAdmin(ctx, targetID); err != nil {
		return fmt.Errorf(ErrMsgRevokeFailed, targetID, err)
	}
	logger.FromContext(ctx).Info(LogMsgAdminRevoked, "actor_id", actorID, "target_id", targetID)
	return nil
}

// ListAdmins is visible to either admin tier
func (s *service) ListAdmins(ctx context.Context, actorID string) ([]domain.AdminGrant, error) {
	role, err := s.actorRole(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if role == domain.RolePlayer {
		return nil, fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrPermissionDenied, role, ActionList, "the admin roster")
	}
	grants, err := s.repo.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListAdminsFailed, err)
	}
	return grants, nil
}

// CanWithdraw allows the seller, and the super-admin for any listing
func (s *service) CanWithdraw(ctx context.Context, actorID string, listing *domain.Listing) error {
	role, err := s.actorRole(ctx, actorID)
	if err != nil {
		return err
	}
	if listing.SellerID == actorID || role == domain.RoleSuperAdmin {
		return nil
	}
	return fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrPermissionDenied, role, ActionWithdraw, "another player's listing")
}

// CanForfeit allows only the super-admin. Delegated admins never seize goods.
func (s *service) CanForfeit(ctx context.Context, actorID string, listing *domain.Listing) error {
	return s.requireSuperAdmin(ctx, actorID, ActionForfeit)
}

// CanRestock allows either admin tier
func (s *service) CanRestock(ctx context.Context, actorID string) error {
	role, err := s.actorRole(ctx, actorID)
	if err != nil {
		return err
	}
	if role == domain.RolePlayer {
		return fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrPermissionDenied, role, ActionRestock, "system stock")
	}
	return nil
}

// CanReadJournal allows either admin tier to read the recovery journal
func (s *service) CanReadJournal(ctx context.Context, actorID string) error {
	role, err := s.actorRole(ctx, actorID)
	if err != nil {
		return err
	}
	if role == domain.RolePlayer {
		return fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrPermissionDenied, role, ActionJournal, "the recovery journal")
	}
	return nil
}

func (s *service) requireSuperAdmin(ctx context.Context, actorID, action string) error {
	role, err := s.actorRole(ctx, actorID)
	if err != nil {
		return err
	}
	if role != domain.RoleSuperAdmin {
		return fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrPermissionDenied, role, action, "this target")
	}
	return nil
}
