package handler

import (
	"net/http"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/market"
	"github.com/osse101/Huanyu_Go/internal/transaction"
)

// PurchaseRequest buys quantity units of one offer
type PurchaseRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Source    string `json:"source" validate:"required,offer_source"`
	ID        int64  `json:"id" validate:"required,gt=0"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0,max=9999"`
}

// CreateListingRequest puts held goods up for sale
type CreateListingRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	ItemID    int    `json:"item_id" validate:"required,gt=0"`
	Price     int64  `json:"price" validate:"required,gt=0"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0,max=9999"`
}

// ListingActionRequest names who is closing a listing
type ListingActionRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
}

// HandleSystemOffers streams system goods page by page from the board and
// stops early once limit offers have been collected
func HandleSystemOffers(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := getOptionalIntQuery(r, w, QueryLimit)
		if !ok {
			return
		}

		offers := make([]domain.Offer, 0)
		for offer, err := range svc.SystemOffers(r.Context()) {
			if err != nil {
				respondServiceError(w, r, OpSystemOffers, err)
				return
			}
			offers = append(offers, offer)
			if limit > 0 && len(offers) >= limit {
				break
			}
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: offers})
	}
}

// HandlePlayerOffers lists active player listings, optionally narrowed by
// seller, category or item
func HandlePlayerOffers(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := getOptionalIntQuery(r, w, QueryItemID)
		if !ok {
			return
		}
		filter := domain.ListingFilter{
			SellerID: r.URL.Query().Get(QuerySellerID),
			Category: r.URL.Query().Get(QueryCategory),
			ItemID:   itemID,
		}
		if filter.SellerID != "" {
			if err := GetValidator().ValidateVar(filter.SellerID, "uuid"); err != nil {
				respondError(w, http.StatusBadRequest, domain.ReasonInvalidInput)
				return
			}
		}

		offers, err := svc.PlayerOffers(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, OpPlayerOffers, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: offers})
	}
}

// HandlePurchase buys from a system offer or a player listing
func HandlePurchase(svc transaction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpPurchase); err != nil {
			return
		}
		logger.FromContext(r.Context()).Debug("Purchase request",
			"account_id", req.AccountID, "source", req.Source, "id", req.ID, "quantity", req.Quantity)

		ref := domain.OfferRef{Source: domain.OfferSource(req.Source), ID: req.ID}
		receipt, err := svc.Purchase(r.Context(), req.AccountID, ref, req.Quantity)
		if err != nil {
			respondServiceError(w, r, OpPurchase, err)
			return
		}
		respondJSON(w, http.StatusOK, receipt)
	}
}

// HandleCreateListing moves goods from the backpack onto the board
func HandleCreateListing(svc transaction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpCreateListing); err != nil {
			return
		}

		receipt, err := svc.CreateListing(r.Context(), req.AccountID, req.ItemID, req.Price, req.Quantity)
		if err != nil {
			respondServiceError(w, r, OpCreateListing, err)
			return
		}
		respondJSON(w, http.StatusCreated, receipt)
	}
}

// HandleWithdrawListing closes a listing and returns the unsold goods to the seller
func HandleWithdrawListing(svc transaction.Service) http.HandlerFunc {
	return closeListing(svc, OpWithdraw, false)
}

// HandleForfeitListing closes a listing without refund
func HandleForfeitListing(svc transaction.Service) http.HandlerFunc {
	return closeListing(svc, OpForfeit, true)
}

func closeListing(svc transaction.Service, opName string, adminForced bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, ok := getIDParam(r, w, ParamListingID)
		if !ok {
			return
		}
		var req ListingActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}

		receipt, err := svc.WithdrawListing(r.Context(), req.AccountID, listingID, adminForced)
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		respondJSON(w, http.StatusOK, receipt)
	}
}
