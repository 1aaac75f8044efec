package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"travel-gateway/internal/config"
	"travel-gateway/internal/flights"
	"travel-gateway/internal/gateway"
	"travel-gateway/internal/hotels"
	"travel-gateway/internal/locations"
	"travel-gateway/internal/metrics"
	"travel-gateway/internal/models"
	"travel-gateway/internal/utils"
)

const (
	requestIDHeader = "X-Request-ID"

	// maxBodyBytes bounds booking and pricing payloads
	maxBodyBytes = 1 << 20
)

// Services are the domain services exposed over HTTP
type Services struct {
	Flights   *flights.Service
	Hotels    *hotels.Service
	Locations *locations.Service
}

// Server represents the travel API HTTP server
type Server struct {
	gateway   *gateway.Gateway
	flights   *flights.Service
	hotels    *hotels.Service
	locations *locations.Service
	clock     clock.Clock
	validate  *validator.Validate
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates the API server. The clock decides which dates count as future.
func NewServer(gw *gateway.Gateway, services Services, cfg config.ServerConfig, clk clock.Clock, logger *zap.Logger) *Server {
	s := &Server{
		gateway:   gw,
		flights:   services.Flights,
		hotels:    services.Hotels,
		locations: services.Locations,
		clock:     clk,
		validate:  validator.New(),
		logger:    logger,
	}

	s.server = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Start listens on the configured address until Stop is called
func (s *Server) Start() error {
	s.logger.Info("Starting travel API server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping travel API server")
	return s.server.Shutdown(ctx)
}

// Handler returns the routed handler with request ids attached to every response
func (s *Server) Handler() http.Handler {
	return withRequestID(s.createRouter())
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(instrument)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/locations/search", s.handleLocationSearch).Methods(http.MethodGet)
	api.HandleFunc("/flights/search", s.handleFlightSearch).Methods(http.MethodGet)
	api.HandleFunc("/flights/price", s.handleFlightPrice).Methods(http.MethodPost)
	api.HandleFunc("/flights/orders", s.handleFlightOrder).Methods(http.MethodPost)
	api.HandleFunc("/hotels/search", s.handleHotelSearch).Methods(http.MethodGet)
	api.HandleFunc("/hotels/offers/{hotelId}/{offerId}", s.handleHotelOffer).Methods(http.MethodGet)
	api.HandleFunc("/hotels/bookings", s.handleHotelBooking).Methods(http.MethodPost)

	admin := router.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/cache/stats", s.handleCacheStats).Methods(http.MethodGet)
	admin.HandleFunc("/cache/entry", s.handleCacheEntry).Methods(http.MethodGet)
	admin.HandleFunc("/cache", s.handleCacheInvalidate).Methods(http.MethodDelete)
	admin.HandleFunc("/stats/reset", s.handleStatsReset).Methods(http.MethodPost)
	admin.HandleFunc("/queue/clear", s.handleQueueClear).Methods(http.MethodPost)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(requestIDHeader, requestID)
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request counts and durations per route template
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		done := metrics.TimeHTTPRequest(route)
		next.ServeHTTP(recorder, r)
		done()

		metrics.RecordHTTPRequest(route, r.Method, strconv.Itoa(recorder.status))
	})
}

// handleHealth reports queue and cache state; ?deep=1 also tests provider connectivity
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	wrapper := s.gateway.Wrapper()
	health := HealthResponse{
		Status:      "healthy",
		Environment: string(wrapper.Environment()),
		Configured:  wrapper.IsConfigured(),
		Queue:       s.gateway.Queue().Stats(),
		Cache:       s.gateway.Cache().Stats(),
	}

	status := http.StatusOK
	if deep := r.URL.Query().Get("deep"); deep == "1" || deep == "true" {
		connection := s.gateway.TestConnection(r.Context())
		health.Connection = &connection
		if !connection.Success {
			health.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	s.writeResponse(w, status, health)
}

// parseRequest decodes a JSON body into v and validates it
func (s *Server) parseRequest(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	defer r.Body.Close()

	if err := utils.UnmarshalAny(body, v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}

// writeResponse writes a successful JSON envelope
func (s *Server) writeResponse(w http.ResponseWriter, statusCode int, v interface{}) {
	body, err := utils.SuccessResponse(v)
	if err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
		s.writeErrorResponse(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes a failed JSON envelope for a request the gateway rejected itself
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	s.writeError(w, statusCode, utils.ErrorResponse(message, "validation", ""))
}

// writeGatewayError maps a service failure onto its status code
func (s *Server) writeGatewayError(w http.ResponseWriter, message string, err error) {
	statusCode := statusForError(err)
	kind := string(models.KindOf(err))
	if kind == "" {
		kind = "internal"
	}
	s.writeError(w, statusCode, utils.ErrorResponse(message, kind, err.Error()))
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func statusForError(err error) int {
	switch models.KindOf(err) {
	case models.KindConfiguration:
		return http.StatusServiceUnavailable
	case models.KindAuthentication:
		return http.StatusUnauthorized
	case models.KindRateLimit:
		return http.StatusTooManyRequests
	case models.KindRequest:
		return http.StatusBadRequest
	case models.KindQueueCleared:
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, models.ErrQueueClosed) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}
