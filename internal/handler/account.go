package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/Huanyu_Go/internal/catalog"
	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/inventory"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/user"
)

// RegisterRequest opens a new account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50,excludesall=\x00\n\r\t"`
}

// HandleRegister creates an account with the configured starting balance
func HandleRegister(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpRegister); err != nil {
			return
		}

		acct, err := svc.Register(r.Context(), req.Username)
		if err != nil {
			respondServiceError(w, r, OpRegister, err)
			return
		}
		respondJSON(w, http.StatusCreated, acct)
	}
}

// HandleGetAccount returns the profile and spirit stone balance of one account
func HandleGetAccount(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := getAccountParam(r, w)
		if !ok {
			return
		}

		acct, err := svc.Get(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, OpGetAccount, err)
			return
		}
		respondJSON(w, http.StatusOK, acct)
	}
}

// HandleBackpack lists an account's holdings joined with item definitions
func HandleBackpack(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := getAccountParam(r, w)
		if !ok {
			return
		}

		holdings, err := svc.List(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, OpBackpack, err)
			return
		}
		logger.FromContext(r.Context()).Debug("Backpack listed", "account_id", accountID, "count", len(holdings))
		respondJSON(w, http.StatusOK, DataResponse{Data: holdings})
	}
}

// HandleDiscard throws away a whole stack
func HandleDiscard(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := getAccountParam(r, w)
		if !ok {
			return
		}
		itemID, ok := getIDParam(r, w, ParamItemID)
		if !ok {
			return
		}

		qty, err := svc.Discard(r.Context(), accountID, int(itemID))
		if err != nil {
			respondServiceError(w, r, OpDiscard, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{
			Message: fmt.Sprintf(MsgDiscardedFmt, qty),
			Data:    map[string]int{"item_id": int(itemID), "quantity": qty},
		})
	}
}

// HandleCatalogItems lists every item definition
func HandleCatalogItems(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Items(r.Context())
		if err != nil {
			respondServiceError(w, r, OpCatalogItems, err)
			return
		}
		category := r.URL.Query().Get(QueryCategory)
		if category != "" {
			filtered := make([]domain.Item, 0, len(items))
			for _, it := range items {
				if it.Category == category {
					filtered = append(filtered, it)
				}
			}
			items = filtered
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}
