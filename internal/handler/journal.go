package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/osse101/Huanyu_Go/internal/admin"
	"github.com/osse101/Huanyu_Go/internal/eventlog"
)

// HandleJournal returns the recovery journal, newest first. Admins only.
// Optional filters: account_id, type, since (RFC 3339) and limit.
func HandleJournal(svc eventlog.Service, gate admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := GetQueryParam(r, w, QueryActorID, "uuid")
		if !ok {
			return
		}
		limit, ok := getOptionalIntQuery(r, w, QueryLimit)
		if !ok {
			return
		}

		filter := eventlog.EventFilter{
			AccountID: r.URL.Query().Get(QueryAccountID),
			EventType: r.URL.Query().Get(QueryEventType),
			Limit:     limit,
		}
		if filter.AccountID != "" {
			if err := GetValidator().ValidateVar(filter.AccountID, "uuid"); err != nil {
				respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, QueryAccountID))
				return
			}
		}
		if raw := r.URL.Query().Get(QuerySince); raw != "" {
			since, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, QuerySince))
				return
			}
			filter.Since = since
		}

		if err := gate.CanReadJournal(r.Context(), actorID); err != nil {
			respondServiceError(w, r, OpJournal, err)
			return
		}
		events, err := svc.Events(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, OpJournal, err)
			return
		}
		if events == nil {
			events = []eventlog.Event{}
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: events})
	}
}
