package handler

import (
	"context"
	"net/http"

	"github.com/osse101/Huanyu_Go/internal/admin"
	"github.com/osse101/Huanyu_Go/internal/transaction"
)

// ModerationRequest names the acting admin and the target account
type ModerationRequest struct {
	ActorID  string `json:"actor_id" validate:"required,uuid"`
	TargetID string `json:"target_id" validate:"required,uuid,nefield=ActorID"`
}

// RestockRequest sets the finite stock of a system item. -1 restores unlimited.
type RestockRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid"`
	ItemID  int    `json:"item_id" validate:"required,gt=0"`
	Stock   int64  `json:"stock" validate:"gte=-1"`
}

type moderationAction func(ctx context.Context, actorID, targetID string) error

// moderate decodes a ModerationRequest and runs action on it
func moderate(opName, successMsg string, action moderationAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ModerationRequest
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}
		if err := action(r.Context(), req.ActorID, req.TargetID); err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: successMsg})
	}
}

// HandleBan bans the target from every economy flow
func HandleBan(svc admin.Service) http.HandlerFunc {
	return moderate(OpBan, MsgAccountBanned, svc.Ban)
}

// HandleUnban lifts a ban
func HandleUnban(svc admin.Service) http.HandlerFunc {
	return moderate(OpUnban, MsgAccountUnbanned, svc.Unban)
}

// HandlePromote grants delegated admin rights
func HandlePromote(svc admin.Service) http.HandlerFunc {
	return moderate(OpPromote, MsgAdminPromoted, svc.Promote)
}

// HandleDemote revokes delegated admin rights
func HandleDemote(svc admin.Service) http.HandlerFunc {
	return moderate(OpDemote, MsgAdminDemoted, svc.Demote)
}

// HandleListAdmins returns the delegated admin roster
func HandleListAdmins(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := GetQueryParam(r, w, QueryActorID, "uuid")
		if !ok {
			return
		}
		grants, err := svc.ListAdmins(r.Context(), actorID)
		if err != nil {
			respondServiceError(w, r, OpListAdmins, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: grants})
	}
}

// HandleRestock sets the stock of a system item
func HandleRestock(svc transaction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RestockRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpRestock); err != nil {
			return
		}
		if err := svc.Restock(r.Context(), req.ActorID, req.ItemID, req.Stock); err != nil {
			respondServiceError(w, r, OpRestock, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRestocked})
	}
}
