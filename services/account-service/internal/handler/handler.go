package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/session"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
	"github.com/vasapolrittideah/cashflower/shared/validation"
)

const (
	msgInternalError = "Internal server error"
	msgSendingEmail  = "Error sending email"
	msgEmailSent     = "Email sent"
)

// Dependencies wires the use cases into the HTTP layer.
type Dependencies struct {
	Auth          usecase.AuthUsecase
	PasswordReset usecase.PasswordResetUsecase
	Account       usecase.AccountUsecase
	Profile       usecase.ProfileUsecase
	Goal          usecase.GoalUsecase
	Transaction   usecase.TransactionUsecase
	Contact       usecase.ContactUsecase

	Sessions  *session.Manager
	Validator *validation.Validator
	Logger    *zerolog.Logger

	// Metrics and Gatherer are optional; /metrics is only mounted with a Gatherer.
	Metrics  *httpx.Metrics
	Gatherer prometheus.Gatherer

	// EnforceSession requires a valid session cookie on account data routes.
	EnforceSession bool
}

type accountHTTPHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	accountUsecase       usecase.AccountUsecase
	profileUsecase       usecase.ProfileUsecase
	goalUsecase          usecase.GoalUsecase
	transactionUsecase   usecase.TransactionUsecase
	contactUsecase       usecase.ContactUsecase
	sessions             *session.Manager
	validator            *validation.Validator
	logger               *zerolog.Logger
}

// NewRouter builds the HTTP API of the account service.
func NewRouter(deps Dependencies) http.Handler {
	h := &accountHTTPHandler{
		authUsecase:          deps.Auth,
		passwordResetUsecase: deps.PasswordReset,
		accountUsecase:       deps.Account,
		profileUsecase:       deps.Profile,
		goalUsecase:          deps.Goal,
		transactionUsecase:   deps.Transaction,
		contactUsecase:       deps.Contact,
		sessions:             deps.Sessions,
		validator:            deps.Validator,
		logger:               deps.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.RequestLogger(deps.Logger, deps.Metrics))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Post("/forgot_password", h.ForgotPassword)
	r.Post("/reset_password/{token}", h.ResetPassword)
	r.Post("/contact", h.Contact)

	r.Group(func(r chi.Router) {
		if deps.EnforceSession {
			r.Use(deps.Sessions.RequireSession(deps.Auth, deps.Logger))
		}

		r.Delete("/delete_account", h.DeleteAccount)

		r.Post("/profile", h.CreateProfile)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)

		r.Post("/goals", h.CreateGoal)
		r.Get("/goals", h.ListGoals)
		r.Put("/goals/{id}", h.UpdateGoal)
		r.Delete("/goals/{id}", h.DeleteGoal)

		r.Post("/transactions", h.CreateTransaction)
		r.Get("/transactions", h.ListTransactions)
		r.Delete("/transactions/{id}", h.DeleteTransaction)
	})

	return r
}

// bind decodes and validates the request body into dst. It writes the error
// response itself and reports whether the handler may continue.
func (h *accountHTTPHandler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}

	fields, err := h.validator.Struct(dst)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to validate request")
		httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		return false
	}
	if fields != nil {
		httpx.WriteValidationError(w, fields)
		return false
	}

	return true
}

func requireEmailQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email is required")
		return "", false
	}

	return email, true
}
