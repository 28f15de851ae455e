package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/hotelbilling/pkg/api"
)

// AdminServiceName is the fully-qualified name of the AdminService service.
const AdminServiceName = "hotelbilling.v1.AdminService"

const (
	AdminServiceAddMenuItemProcedure    = "/hotelbilling.v1.AdminService/AddMenuItem"
	AdminServiceUpdateMenuItemProcedure = "/hotelbilling.v1.AdminService/UpdateMenuItem"
	AdminServiceDeleteMenuItemProcedure = "/hotelbilling.v1.AdminService/DeleteMenuItem"
	AdminServiceAddTableProcedure       = "/hotelbilling.v1.AdminService/AddTable"
	AdminServiceAddWaiterProcedure      = "/hotelbilling.v1.AdminService/AddWaiter"
	AdminServiceAddUserProcedure        = "/hotelbilling.v1.AdminService/AddUser"
	AdminServiceListUsersProcedure      = "/hotelbilling.v1.AdminService/ListUsers"
	AdminServiceGetSalesReportProcedure = "/hotelbilling.v1.AdminService/GetSalesReport"
)

// AdminServiceHandler is implemented by the server side of AdminService.
// Every procedure requires an admin caller.
type AdminServiceHandler interface {
	AddMenuItem(context.Context, *connect.Request[api.AddMenuItemRequest]) (*connect.Response[api.AddMenuItemResponse], error)
	UpdateMenuItem(context.Context, *connect.Request[api.UpdateMenuItemRequest]) (*connect.Response[api.UpdateMenuItemResponse], error)
	DeleteMenuItem(context.Context, *connect.Request[api.DeleteMenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error)
	AddTable(context.Context, *connect.Request[api.AddTableRequest]) (*connect.Response[api.AddTableResponse], error)
	AddWaiter(context.Context, *connect.Request[api.AddWaiterRequest]) (*connect.Response[api.AddWaiterResponse], error)
	AddUser(context.Context, *connect.Request[api.AddUserRequest]) (*connect.Response[api.AddUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	GetSalesReport(context.Context, *connect.Request[api.GetSalesReportRequest]) (*connect.Response[api.GetSalesReportResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	addMenuItem := connect.NewUnaryHandler(AdminServiceAddMenuItemProcedure, svc.AddMenuItem, opts...)
	updateMenuItem := connect.NewUnaryHandler(AdminServiceUpdateMenuItemProcedure, svc.UpdateMenuItem, opts...)
	deleteMenuItem := connect.NewUnaryHandler(AdminServiceDeleteMenuItemProcedure, svc.DeleteMenuItem, opts...)
	addTable := connect.NewUnaryHandler(AdminServiceAddTableProcedure, svc.AddTable, opts...)
	addWaiter := connect.NewUnaryHandler(AdminServiceAddWaiterProcedure, svc.AddWaiter, opts...)
	addUser := connect.NewUnaryHandler(AdminServiceAddUserProcedure, svc.AddUser, opts...)
	listUsers := connect.NewUnaryHandler(AdminServiceListUsersProcedure, svc.ListUsers, opts...)
	getSalesReport := connect.NewUnaryHandler(AdminServiceGetSalesReportProcedure, svc.GetSalesReport, opts...)

	return "/" + AdminServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AdminServiceAddMenuItemProcedure:
			addMenuItem.ServeHTTP(w, r)
		case AdminServiceUpdateMenuItemProcedure:
			updateMenuItem.ServeHTTP(w, r)
		case AdminServiceDeleteMenuItemProcedure:
			deleteMenuItem.ServeHTTP(w, r)
		case AdminServiceAddTableProcedure:
			addTable.ServeHTTP(w, r)
		case AdminServiceAddWaiterProcedure:
			addWaiter.ServeHTTP(w, r)
		case AdminServiceAddUserProcedure:
			addUser.ServeHTTP(w, r)
		case AdminServiceListUsersProcedure:
			listUsers.ServeHTTP(w, r)
		case AdminServiceGetSalesReportProcedure:
			getSalesReport.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AdminServiceClient is a client for AdminService.
type AdminServiceClient interface {
	AddMenuItem(context.Context, *connect.Request[api.AddMenuItemRequest]) (*connect.Response[api.AddMenuItemResponse], error)
	UpdateMenuItem(context.Context, *connect.Request[api.UpdateMenuItemRequest]) (*connect.Response[api.UpdateMenuItemResponse], error)
	DeleteMenuItem(context.Context, *connect.Request[api.DeleteMenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error)
	AddTable(context.Context, *connect.Request[api.AddTableRequest]) (*connect.Response[api.AddTableResponse], error)
	AddWaiter(context.Context, *connect.Request[api.AddWaiterRequest]) (*connect.Response[api.AddWaiterResponse], error)
	AddUser(context.Context, *connect.Request[api.AddUserRequest]) (*connect.Response[api.AddUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	GetSalesReport(context.Context, *connect.Request[api.GetSalesReportRequest]) (*connect.Response[api.GetSalesReportResponse], error)
}

// NewAdminServiceClient constructs a client for AdminService at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &adminServiceClient{
		addMenuItem:    connect.NewClient[api.AddMenuItemRequest, api.AddMenuItemResponse](httpClient, baseURL+AdminServiceAddMenuItemProcedure, opts...),
		updateMenuItem: connect.NewClient[api.UpdateMenuItemRequest, api.UpdateMenuItemResponse](httpClient, baseURL+AdminServiceUpdateMenuItemProcedure, opts...),
		deleteMenuItem: connect.NewClient[api.DeleteMenuItemRequest, api.DeleteMenuItemResponse](httpClient, baseURL+AdminServiceDeleteMenuItemProcedure, opts...),
		addTable:       connect.NewClient[api.AddTableRequest, api.AddTableResponse](httpClient, baseURL+AdminServiceAddTableProcedure, opts...),
		addWaiter:      connect.NewClient[api.AddWaiterRequest, api.AddWaiterResponse](httpClient, baseURL+AdminServiceAddWaiterProcedure, opts...),
		addUser:        connect.NewClient[api.AddUserRequest, api.AddUserResponse](httpClient, baseURL+AdminServiceAddUserProcedure, opts...),
		listUsers:      connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+AdminServiceListUsersProcedure, opts...),
		getSalesReport: connect.NewClient[api.GetSalesReportRequest, api.GetSalesReportResponse](httpClient, baseURL+AdminServiceGetSalesReportProcedure, opts...),
	}
}

type adminServiceClient struct {
	addMenuItem    *connect.Client[api.AddMenuItemRequest, api.AddMenuItemResponse]
	updateMenuItem *connect.Client[api.UpdateMenuItemRequest, api.UpdateMenuItemResponse]
	deleteMenuItem *connect.Client[api.DeleteMenuItemRequest, api.DeleteMenuItemResponse]
	addTable       *connect.Client[api.AddTableRequest, api.AddTableResponse]
	addWaiter      *connect.Client[api.AddWaiterRequest, api.AddWaiterResponse]
	addUser        *connect.Client[api.AddUserRequest, api.AddUserResponse]
	listUsers      *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	getSalesReport *connect.Client[api.GetSalesReportRequest, api.GetSalesReportResponse]
}

func (c *adminServiceClient) AddMenuItem(ctx context.Context, req *connect.Request[api.AddMenuItemRequest]) (*connect.Response[api.AddMenuItemResponse], error) {
	return c.addMenuItem.CallUnary(ctx, req)
}

func (c *adminServiceClient) UpdateMenuItem(ctx context.Context, req *connect.Request[api.UpdateMenuItemRequest]) (*connect.Response[api.UpdateMenuItemResponse], error) {
	return c.updateMenuItem.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteMenuItem(ctx context.Context, req *connect.Request[api.DeleteMenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error) {
	return c.deleteMenuItem.CallUnary(ctx, req)
}

func (c *adminServiceClient) AddTable(ctx context.Context, req *connect.Request[api.AddTableRequest]) (*connect.Response[api.AddTableResponse], error) {
	return c.addTable.CallUnary(ctx, req)
}

func (c *adminServiceClient) AddWaiter(ctx context.Context, req *connect.Request[api.AddWaiterRequest]) (*connect.Response[api.AddWaiterResponse], error) {
	return c.addWaiter.CallUnary(ctx, req)
}

func (c *adminServiceClient) AddUser(ctx context.Context, req *connect.Request[api.AddUserRequest]) (*connect.Response[api.AddUserResponse], error) {
	return c.addUser.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *adminServiceClient) GetSalesReport(ctx context.Context, req *connect.Request[api.GetSalesReportRequest]) (*connect.Response[api.GetSalesReportResponse], error) {
	return c.getSalesReport.CallUnary(ctx, req)
}
