package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/hotelbilling/internal/billing"
	"github.com/mmynk/hotelbilling/internal/middleware"
	"github.com/mmynk/hotelbilling/internal/models"
	"github.com/mmynk/hotelbilling/pkg/api"
	"github.com/mmynk/hotelbilling/pkg/api/apiconnect"
)

var _ apiconnect.AdminServiceHandler = (*AdminService)(nil)

// AdminService implements the Connect AdminService. The admin gate is
// applied by middleware.Authorize before any method runs.
type AdminService struct {
	state  *billing.State
	logger *slog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(state *billing.State, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{state: state, logger: logger}
}

func (s *AdminService) AddMenuItem(ctx context.Context, req *connect.Request[api.AddMenuItemRequest]) (*connect.Response[api.AddMenuItemResponse], error) {
	item, err := s.state.AddMenuItem(models.MenuItem{
		ID:    req.Msg.ID,
		Name:  req.Msg.Name,
		Price: req.Msg.Price,
		GST:   req.Msg.GST,
	})
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.AddMenuItemResponse{Item: toAPIMenuItem(item)}), nil
}

func (s *AdminService) UpdateMenuItem(ctx context.Context, req *connect.Request[api.UpdateMenuItemRequest]) (*connect.Response[api.UpdateMenuItemResponse], error) {
	item, err := s.state.UpdateMenuItem(req.Msg.ID, models.MenuItemPatch{
		Name:  req.Msg.Name,
		Price: req.Msg.Price,
		GST:   req.Msg.GST,
	})
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.UpdateMenuItemResponse{Item: toAPIMenuItem(item)}), nil
}

func (s *AdminService) DeleteMenuItem(ctx context.Context, req *connect.Request[api.DeleteMenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error) {
	if err := s.state.DeleteMenuItem(req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.DeleteMenuItemResponse{}), nil
}

func (s *AdminService) AddTable(ctx context.Context, req *connect.Request[api.AddTableRequest]) (*connect.Response[api.AddTableResponse], error) {
	table, err := s.state.AddTable(req.Msg.Name)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.AddTableResponse{Table: toAPITable(table)}), nil
}

func (s *AdminService) AddWaiter(ctx context.Context, req *connect.Request[api.AddWaiterRequest]) (*connect.Response[api.AddWaiterResponse], error) {
	waiter, err := s.state.AddWaiter(req.Msg.Name)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.AddWaiterResponse{Waiter: toAPIWaiter(waiter)}), nil
}

// AddUser reports validation and duplicate-id failures in the response body
// rather than as RPC errors.
func (s *AdminService) AddUser(ctx context.Context, req *connect.Request[api.AddUserRequest]) (*connect.Response[api.AddUserResponse], error) {
	res := s.state.AddUserResult(models.NewUser{
		ID:       req.Msg.ID,
		Name:     req.Msg.Name,
		Role:     models.Role(req.Msg.Role),
		Password: req.Msg.Password,
	})
	if !res.OK {
		s.logger.Warn("AddUser rejected", "user_id", req.Msg.ID, "reason", res.Message, "admin_id", middleware.GetUserID(ctx))
	}
	return connect.NewResponse(&api.AddUserResponse{OK: res.OK, Message: res.Message}), nil
}

func (s *AdminService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users := s.state.Users()
	out := make([]api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: out}), nil
}

// GetSalesReport aggregates paid bills by waiter and by table.
func (s *AdminService) GetSalesReport(ctx context.Context, req *connect.Request[api.GetSalesReportRequest]) (*connect.Response[api.GetSalesReportResponse], error) {
	summary := s.state.SalesSummary()
	return connect.NewResponse(&api.GetSalesReportResponse{
		BillCount: summary.BillCount,
		Totals:    toAPITotals(summary.Totals),
		ByWaiter:  toAPIGroupSales(summary.ByWaiter),
		ByTable:   toAPIGroupSales(summary.ByTable),
	}), nil
}
