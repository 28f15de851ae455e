package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/hotelbilling/internal/billing"
	"github.com/mmynk/hotelbilling/internal/middleware"
	"github.com/mmynk/hotelbilling/pkg/api"
	"github.com/mmynk/hotelbilling/pkg/api/apiconnect"
)

var _ apiconnect.BillingServiceHandler = (*BillingService)(nil)

// BillingService implements the Connect BillingService on top of billing.State.
type BillingService struct {
	state  *billing.State
	logger *slog.Logger
}

// NewBillingService creates a new BillingService.
func NewBillingService(state *billing.State, logger *slog.Logger) *BillingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BillingService{state: state, logger: logger}
}

func (s *BillingService) ListTables(ctx context.Context, req *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error) {
	tables := s.state.Tables()
	out := make([]api.Table, len(tables))
	for i, t := range tables {
		out[i] = toAPITable(t)
	}
	return connect.NewResponse(&api.ListTablesResponse{Tables: out}), nil
}

func (s *BillingService) ListMenu(ctx context.Context, req *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error) {
	menu := s.state.Menu()
	out := make([]api.MenuItem, len(menu))
	for i, item := range menu {
		out[i] = toAPIMenuItem(item)
	}
	return connect.NewResponse(&api.ListMenuResponse{Items: out}), nil
}

func (s *BillingService) ListWaiters(ctx context.Context, req *connect.Request[api.ListWaitersRequest]) (*connect.Response[api.ListWaitersResponse], error) {
	waiters := s.state.Waiters()
	out := make([]api.Waiter, len(waiters))
	for i, w := range waiters {
		out[i] = toAPIWaiter(w)
	}
	return connect.NewResponse(&api.ListWaitersResponse{Waiters: out}), nil
}

// CreateBill opens a bill on a free table.
func (s *BillingService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	s.logger.Debug("CreateBill request",
		"table_id", req.Msg.TableID,
		"waiter", req.Msg.WaiterName,
		"user_id", middleware.GetUserID(ctx),
	)

	billID, err := s.state.CreateBill(req.Msg.TableID, req.Msg.WaiterName)
	if err != nil {
		return nil, connectError(err)
	}

	bill, err := s.bill(billID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.CreateBillResponse{Bill: bill}), nil
}

// AddLineItem adds a menu item to an open bill. Qty defaults to 1.
func (s *BillingService) AddLineItem(ctx context.Context, req *connect.Request[api.AddLineItemRequest]) (*connect.Response[api.AddLineItemResponse], error) {
	qty := req.Msg.Qty
	if qty == 0 {
		qty = 1
	}

	if err := s.state.AddMenuItemToBill(req.Msg.BillID, req.Msg.MenuItemID, qty); err != nil {
		return nil, connectError(err)
	}

	bill, err := s.bill(req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.AddLineItemResponse{Bill: bill}), nil
}

func (s *BillingService) RemoveLineItem(ctx context.Context, req *connect.Request[api.RemoveLineItemRequest]) (*connect.Response[api.RemoveLineItemResponse], error) {
	if err := s.state.RemoveLineItem(req.Msg.BillID, req.Msg.LineID); err != nil {
		return nil, connectError(err)
	}

	bill, err := s.bill(req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.RemoveLineItemResponse{Bill: bill}), nil
}

// FinalizeBill marks a bill paid and frees its table.
func (s *BillingService) FinalizeBill(ctx context.Context, req *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error) {
	bill, err := s.state.FinalizeBill(req.Msg.BillID)
	if err != nil {
		return nil, connectError(err)
	}
	s.logger.Info("Bill finalized via RPC", "bill_id", bill.ID, "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.FinalizeBillResponse{Bill: toAPIBill(bill)}), nil
}

func (s *BillingService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	bill, err := s.bill(req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: bill}), nil
}

// ListBills returns bills newest first.
func (s *BillingService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	bills := s.state.Bills()
	if req.Msg.OpenOnly {
		bills = s.state.OpenBills()
	}

	out := make([]api.Bill, len(bills))
	for i, b := range bills {
		out[i] = toAPIBill(b)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}

func (s *BillingService) bill(id string) (api.Bill, error) {
	bill, err := s.state.Bill(id)
	if err != nil {
		return api.Bill{}, connectError(err)
	}
	return toAPIBill(bill), nil
}
