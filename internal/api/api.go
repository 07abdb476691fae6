// Package api exposes the service layer over a JSON HTTP API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tallyhq/tally/internal/auth"
	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/service"
)

// API holds the router and the services it dispatches to.
type API struct {
	router      *mux.Router
	authSvc     *service.AuthService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	groups      *service.GroupService
	balances    *service.BalanceService
	jwtManager  *auth.JWTManager
}

// Services bundles the dependencies the API dispatches to.
type Services struct {
	Auth        *service.AuthService
	Expenses    *service.ExpenseService
	Settlements *service.SettlementService
	Groups      *service.GroupService
	Balances    *service.BalanceService
}

// New wires the routes and returns the API.
func New(svcs Services, jwtManager *auth.JWTManager) *API {
	a := &API{
		router:      mux.NewRouter(),
		authSvc:     svcs.Auth,
		expenses:    svcs.Expenses,
		settlements: svcs.Settlements,
		groups:      svcs.Groups,
		balances:    svcs.Balances,
		jwtManager:  jwtManager,
	}
	a.setupRoutes()
	return a
}

func (a *API) setupRoutes() {
	// Runs after route matching, so the metrics path label is the route
	// template rather than the raw URL.
	a.router.Use(middleware.Metrics(routeTemplate))

	// Public endpoints
	a.router.HandleFunc("/api/auth/register", a.handleRegister).Methods("POST")
	a.router.HandleFunc("/api/auth/login", a.handleLogin).Methods("POST")
	a.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected endpoints
	protected := a.router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuth(a.jwtManager))

	protected.HandleFunc("/expenses", a.handleCreateExpense).Methods("POST")
	protected.HandleFunc("/expenses", a.handleListExpenses).Methods("GET")
	protected.HandleFunc("/settlements", a.handleCreateSettlement).Methods("POST")
	protected.HandleFunc("/settlements", a.handleListSettlements).Methods("GET")

	protected.HandleFunc("/groups", a.handleCreateGroup).Methods("POST")
	protected.HandleFunc("/groups/{group_id}", a.handleGetGroup).Methods("GET")
	protected.HandleFunc("/groups/{group_id}/members", a.handleAddMember).Methods("POST")

	protected.HandleFunc("/balances", a.handleGetBalances).Methods("GET")
	protected.HandleFunc("/balances/users/{user_id}", a.handleGetPairBalance).Methods("GET")
	protected.HandleFunc("/groups/{group_id}/balances", a.handleGetGroupBalances).Methods("GET")
}

// Handler returns the fully wrapped handler: CORS outside, request logging
// outermost. Metrics are attached as router middleware in setupRoutes.
func (a *API) Handler() http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(a.router)

	return middleware.Logging(corsHandler)
}

// routeTemplate returns the mux route pattern for metrics labels, keeping
// label cardinality bounded regardless of path parameters.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
