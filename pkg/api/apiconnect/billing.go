package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/hotelbilling/pkg/api"
)

// BillingServiceName is the fully-qualified name of the BillingService service.
const BillingServiceName = "hotelbilling.v1.BillingService"

const (
	BillingServiceListTablesProcedure     = "/hotelbilling.v1.BillingService/ListTables"
	BillingServiceListMenuProcedure       = "/hotelbilling.v1.BillingService/ListMenu"
	BillingServiceListWaitersProcedure    = "/hotelbilling.v1.BillingService/ListWaiters"
	BillingServiceCreateBillProcedure     = "/hotelbilling.v1.BillingService/CreateBill"
	BillingServiceAddLineItemProcedure    = "/hotelbilling.v1.BillingService/AddLineItem"
	BillingServiceRemoveLineItemProcedure = "/hotelbilling.v1.BillingService/RemoveLineItem"
	BillingServiceFinalizeBillProcedure   = "/hotelbilling.v1.BillingService/FinalizeBill"
	BillingServiceGetBillProcedure        = "/hotelbilling.v1.BillingService/GetBill"
	BillingServiceListBillsProcedure      = "/hotelbilling.v1.BillingService/ListBills"
)

// BillingServiceHandler is implemented by the server side of BillingService.
// Every procedure requires an authenticated caller.
type BillingServiceHandler interface {
	ListTables(context.Context, *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error)
	ListMenu(context.Context, *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error)
	ListWaiters(context.Context, *connect.Request[api.ListWaitersRequest]) (*connect.Response[api.ListWaitersResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	AddLineItem(context.Context, *connect.Request[api.AddLineItemRequest]) (*connect.Response[api.AddLineItemResponse], error)
	RemoveLineItem(context.Context, *connect.Request[api.RemoveLineItemRequest]) (*connect.Response[api.RemoveLineItemResponse], error)
	FinalizeBill(context.Context, *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
}

// NewBillingServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBillingServiceHandler(svc BillingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	listTables := connect.NewUnaryHandler(BillingServiceListTablesProcedure, svc.ListTables, opts...)
	listMenu := connect.NewUnaryHandler(BillingServiceListMenuProcedure, svc.ListMenu, opts...)
	listWaiters := connect.NewUnaryHandler(BillingServiceListWaitersProcedure, svc.ListWaiters, opts...)
	createBill := connect.NewUnaryHandler(BillingServiceCreateBillProcedure, svc.CreateBill, opts...)
	addLineItem := connect.NewUnaryHandler(BillingServiceAddLineItemProcedure, svc.AddLineItem, opts...)
	removeLineItem := connect.NewUnaryHandler(BillingServiceRemoveLineItemProcedure, svc.RemoveLineItem, opts...)
	finalizeBill := connect.NewUnaryHandler(BillingServiceFinalizeBillProcedure, svc.FinalizeBill, opts...)
	getBill := connect.NewUnaryHandler(BillingServiceGetBillProcedure, svc.GetBill, opts...)
	listBills := connect.NewUnaryHandler(BillingServiceListBillsProcedure, svc.ListBills, opts...)

	return "/" + BillingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillingServiceListTablesProcedure:
			listTables.ServeHTTP(w, r)
		case BillingServiceListMenuProcedure:
			listMenu.ServeHTTP(w, r)
		case BillingServiceListWaitersProcedure:
			listWaiters.ServeHTTP(w, r)
		case BillingServiceCreateBillProcedure:
			createBill.ServeHTTP(w, r)
		case BillingServiceAddLineItemProcedure:
			addLineItem.ServeHTTP(w, r)
		case BillingServiceRemoveLineItemProcedure:
			removeLineItem.ServeHTTP(w, r)
		case BillingServiceFinalizeBillProcedure:
			finalizeBill.ServeHTTP(w, r)
		case BillingServiceGetBillProcedure:
			getBill.ServeHTTP(w, r)
		case BillingServiceListBillsProcedure:
			listBills.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BillingServiceClient is a client for BillingService.
type BillingServiceClient interface {
	ListTables(context.Context, *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error)
	ListMenu(context.Context, *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error)
	ListWaiters(context.Context, *connect.Request[api.ListWaitersRequest]) (*connect.Response[api.ListWaitersResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	AddLineItem(context.Context, *connect.Request[api.AddLineItemRequest]) (*connect.Response[api.AddLineItemResponse], error)
	RemoveLineItem(context.Context, *connect.Request[api.RemoveLineItemRequest]) (*connect.Response[api.RemoveLineItemResponse], error)
	FinalizeBill(context.Context, *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
}

// NewBillingServiceClient constructs a client for BillingService at baseURL.
func NewBillingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &billingServiceClient{
		listTables:     connect.NewClient[api.ListTablesRequest, api.ListTablesResponse](httpClient, baseURL+BillingServiceListTablesProcedure, opts...),
		listMenu:       connect.NewClient[api.ListMenuRequest, api.ListMenuResponse](httpClient, baseURL+BillingServiceListMenuProcedure, opts...),
		listWaiters:    connect.NewClient[api.ListWaitersRequest, api.ListWaitersResponse](httpClient, baseURL+BillingServiceListWaitersProcedure, opts...),
		createBill:     connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillingServiceCreateBillProcedure, opts...),
		addLineItem:    connect.NewClient[api.AddLineItemRequest, api.AddLineItemResponse](httpClient, baseURL+BillingServiceAddLineItemProcedure, opts...),
		removeLineItem: connect.NewClient[api.RemoveLineItemRequest, api.RemoveLineItemResponse](httpClient, baseURL+BillingServiceRemoveLineItemProcedure, opts...),
		finalizeBill:   connect.NewClient[api.FinalizeBillRequest, api.FinalizeBillResponse](httpClient, baseURL+BillingServiceFinalizeBillProcedure, opts...),
		getBill:        connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+BillingServiceGetBillProcedure, opts...),
		listBills:      connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+BillingServiceListBillsProcedure, opts...),
	}
}

type billingServiceClient struct {
	listTables     *connect.Client[api.ListTablesRequest, api.ListTablesResponse]
	listMenu       *connect.Client[api.ListMenuRequest, api.ListMenuResponse]
	listWaiters    *connect.Client[api.ListWaitersRequest, api.ListWaitersResponse]
	createBill     *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	addLineItem    *connect.Client[api.AddLineItemRequest, api.AddLineItemResponse]
	removeLineItem *connect.Client[api.RemoveLineItemRequest, api.RemoveLineItemResponse]
	finalizeBill   *connect.Client[api.FinalizeBillRequest, api.FinalizeBillResponse]
	getBill        *connect.Client[api.GetBillRequest, api.GetBillResponse]
	listBills      *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
}

func (c *billingServiceClient) ListTables(ctx context.Context, req *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error) {
	return c.listTables.CallUnary(ctx, req)
}

func (c *billingServiceClient) ListMenu(ctx context.Context, req *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error) {
	return c.listMenu.CallUnary(ctx, req)
}

func (c *billingServiceClient) ListWaiters(ctx context.Context, req *connect.Request[api.ListWaitersRequest]) (*connect.Response[api.ListWaitersResponse], error) {
	return c.listWaiters.CallUnary(ctx, req)
}

func (c *billingServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billingServiceClient) AddLineItem(ctx context.Context, req *connect.Request[api.AddLineItemRequest]) (*connect.Response[api.AddLineItemResponse], error) {
	return c.addLineItem.CallUnary(ctx, req)
}

func (c *billingServiceClient) RemoveLineItem(ctx context.Context, req *connect.Request[api.RemoveLineItemRequest]) (*connect.Response[api.RemoveLineItemResponse], error) {
	return c.removeLineItem.CallUnary(ctx, req)
}

func (c *billingServiceClient) FinalizeBill(ctx context.Context, req *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error) {
	return c.finalizeBill.CallUnary(ctx, req)
}

func (c *billingServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billingServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}
