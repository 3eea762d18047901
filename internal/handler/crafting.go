package handler

import (
	"net/http"

	"github.com/osse101/Huanyu_Go/internal/crafting"
	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/transaction"
)

// CraftRequest starts one alchemy or forge attempt
type CraftRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	RecipeID  int    `json:"recipe_id" validate:"required,gt=0"`
}

// HandleRecipes lists recipes of one kind with whether the account can start
// each one now
func HandleRecipes(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetQueryParam(r, w, QueryAccountID, "uuid")
		if !ok {
			return
		}
		kind := GetOptionalQueryParam(r, QueryKind, "")
		if err := GetValidator().ValidateVar(kind, "recipe_kind"); err != nil {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  ErrMsgInvalidRequestSummary,
				Fields: map[string]string{QueryKind: "Must be alchemy or forge"},
			})
			return
		}

		views, err := svc.Recipes(r.Context(), accountID, domain.RecipeKind(kind))
		if err != nil {
			respondServiceError(w, r, OpRecipes, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: views})
	}
}

// HandleCraft runs one attempt. A failed roll is a 200 with a failure outcome.
func HandleCraft(svc transaction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CraftRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpCraft); err != nil {
			return
		}

		receipt, err := svc.Craft(r.Context(), req.AccountID, req.RecipeID)
		if err != nil {
			respondServiceError(w, r, OpCraft, err)
			return
		}
		respondJSON(w, http.StatusOK, receipt)
	}
}
