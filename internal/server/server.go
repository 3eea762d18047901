package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/Huanyu_Go/internal/admin"
	"github.com/osse101/Huanyu_Go/internal/catalog"
	"github.com/osse101/Huanyu_Go/internal/crafting"
	"github.com/osse101/Huanyu_Go/internal/eventlog"
	"github.com/osse101/Huanyu_Go/internal/handler"
	"github.com/osse101/Huanyu_Go/internal/inventory"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/market"
	"github.com/osse101/Huanyu_Go/internal/metrics"
	"github.com/osse101/Huanyu_Go/internal/transaction"
	"github.com/osse101/Huanyu_Go/internal/user"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	// Isolation is reported by /version
	Isolation string
}

// Services are the read paths and the coordinator the routes call into.
// Reads go straight to the components; every mutation of shared state goes
// through Coordinator.
type Services struct {
	Store       handler.Pinger
	Users       user.Service
	Catalog     catalog.Service
	Inventory   inventory.Service
	Market      market.Service
	Crafting    crafting.Service
	Admin       admin.Service
	EventLog    eventlog.Service
	Coordinator transaction.Service
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	handler.InitValidator()
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Store))
	r.Get("/version", handler.HandleVersion(opts.Isolation))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", handler.HandleRegister(svc.Users))
			r.Route("/{accountID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetAccount(svc.Users))
				r.Get("/backpack", handler.HandleBackpack(svc.Inventory))
				r.Delete("/backpack/{itemID}", handler.HandleDiscard(svc.Inventory))
			})
		})

		r.Get("/catalog/items", handler.HandleCatalogItems(svc.Catalog))

		r.Route("/market", func(r chi.Router) {
			r.Get("/system", handler.HandleSystemOffers(svc.Market))
			r.Post("/purchase", handler.HandlePurchase(svc.Coordinator))
			r.Route("/listings", func(r chi.Router) {
				r.Get("/", handler.HandlePlayerOffers(svc.Market))
				r.Post("/", handler.HandleCreateListing(svc.Coordinator))
				r.Post("/{listingID}/withdraw", handler.HandleWithdrawListing(svc.Coordinator))
				r.Post("/{listingID}/forfeit", handler.HandleForfeitListing(svc.Coordinator))
			})
		})

		r.Route("/crafting", func(r chi.Router) {
			r.Get("/recipes", handler.HandleRecipes(svc.Crafting))
			r.Post("/craft", handler.HandleCraft(svc.Coordinator))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/ban", handler.HandleBan(svc.Admin))
			r.Post("/unban", handler.HandleUnban(svc.Admin))
			r.Post("/promote", handler.HandlePromote(svc.Admin))
			r.Post("/demote", handler.HandleDemote(svc.Admin))
			r.Get("/admins", handler.HandleListAdmins(svc.Admin))
			r.Post("/restock", handler.HandleRestock(svc.Coordinator))
			if svc.EventLog != nil {
				r.Get("/journal", handler.HandleJournal(svc.EventLog, svc.Admin))
			}
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isProbe(path string) bool {
	return strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/readyz") ||
		strings.HasPrefix(path, "/metrics")
}

// loggingMiddleware assigns a request id, stores a request-scoped logger and
// logs start and completion. Probes and scrapes are not logged.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isProbe(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		log := slog.Default().With(logger.AttrKeyRequestID, requestID)
		ctx = logger.WithLogger(ctx, log)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start blocks serving HTTP until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
