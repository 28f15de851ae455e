package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/billing"
	"github.com/mmynk/hotelbilling/internal/middleware"
	"github.com/mmynk/hotelbilling/pkg/api/apiconnect"
)

var adminProcedures = []string{
	apiconnect.AdminServiceAddMenuItemProcedure,
	apiconnect.AdminServiceUpdateMenuItemProcedure,
	apiconnect.AdminServiceDeleteMenuItemProcedure,
	apiconnect.AdminServiceAddTableProcedure,
	apiconnect.AdminServiceAddWaiterProcedure,
	apiconnect.AdminServiceAddUserProcedure,
	apiconnect.AdminServiceListUsersProcedure,
	apiconnect.AdminServiceGetSalesReportProcedure,
}

// AccessPolicy is the gate for every procedure: Login is public, the admin
// service needs the admin role, everything else needs a session.
func AccessPolicy() middleware.Policy {
	policy := middleware.Policy{
		apiconnect.AuthServiceLoginProcedure: middleware.AccessPublic,
	}
	for _, p := range adminProcedures {
		policy[p] = middleware.AccessAdmin
	}
	return policy
}

// NewRouter mounts the auth, billing and admin services on one mux, each
// behind the Authorize and logging interceptors.
func NewRouter(state *billing.State, jwtManager *auth.JWTManager, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	interceptors := connect.WithInterceptors(
		middleware.Authorize(jwtManager, AccessPolicy()),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(state, jwtManager, logger), interceptors))
	mux.Handle(apiconnect.NewBillingServiceHandler(NewBillingService(state, logger), interceptors))
	mux.Handle(apiconnect.NewAdminServiceHandler(NewAdminService(state, logger), interceptors))
	return mux
}
