package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/sharesplit/pkg/api"
)

const (
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "sharesplit.v1.ExpenseService"
)

// Procedure names, usable as the Spec.Procedure field of requests and as mux patterns.
const (
	ExpenseServiceCreateExpenseProcedure   = "/sharesplit.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure      = "/sharesplit.v1.ExpenseService/GetExpense"
	ExpenseServiceListMyExpensesProcedure  = "/sharesplit.v1.ExpenseService/ListMyExpenses"
	ExpenseServiceListExpensesProcedure    = "/sharesplit.v1.ExpenseService/ListExpenses"
	ExpenseServiceGetBalanceSheetProcedure = "/sharesplit.v1.ExpenseService/GetBalanceSheet"
)

// ExpenseServiceClient is a client for the sharesplit.v1.ExpenseService service.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListMyExpenses(context.Context, *connect.Request[api.ListMyExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalanceSheet(context.Context, *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error)
}

// NewExpenseServiceClient constructs a client for the sharesplit.v1.ExpenseService service.
// Requests are sent as JSON.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withJSON(opts, connect.ClientOption(connect.WithCodec(JSONCodec{})))
	return &expenseServiceClient{
		createExpense: connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](
			httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...,
		),
		getExpense: connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](
			httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...,
		),
		listMyExpenses: connect.NewClient[api.ListMyExpensesRequest, api.ListExpensesResponse](
			httpClient, baseURL+ExpenseServiceListMyExpensesProcedure, opts...,
		),
		listExpenses: connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](
			httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...,
		),
		getBalanceSheet: connect.NewClient[api.GetBalanceSheetRequest, api.GetBalanceSheetResponse](
			httpClient, baseURL+ExpenseServiceGetBalanceSheetProcedure, opts...,
		),
	}
}

type expenseServiceClient struct {
	createExpense   *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense      *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listMyExpenses  *connect.Client[api.ListMyExpensesRequest, api.ListExpensesResponse]
	listExpenses    *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getBalanceSheet *connect.Client[api.GetBalanceSheetRequest, api.GetBalanceSheetResponse]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListMyExpenses(ctx context.Context, req *connect.Request[api.ListMyExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listMyExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetBalanceSheet(ctx context.Context, req *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error) {
	return c.getBalanceSheet.CallUnary(ctx, req)
}

// ExpenseServiceHandler is an implementation of the sharesplit.v1.ExpenseService service.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListMyExpenses(context.Context, *connect.Request[api.ListMyExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalanceSheet(context.Context, *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts, connect.HandlerOption(connect.WithCodec(JSONCodec{})))
	createExpense := connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...)
	getExpense := connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...)
	listMyExpenses := connect.NewUnaryHandler(ExpenseServiceListMyExpensesProcedure, svc.ListMyExpenses, opts...)
	listExpenses := connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...)
	getBalanceSheet := connect.NewUnaryHandler(ExpenseServiceGetBalanceSheetProcedure, svc.GetBalanceSheet, opts...)
	return "/" + ExpenseServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServiceCreateExpenseProcedure:
			createExpense.ServeHTTP(w, r)
		case ExpenseServiceGetExpenseProcedure:
			getExpense.ServeHTTP(w, r)
		case ExpenseServiceListMyExpensesProcedure:
			listMyExpenses.ServeHTTP(w, r)
		case ExpenseServiceListExpensesProcedure:
			listExpenses.ServeHTTP(w, r)
		case ExpenseServiceGetBalanceSheetProcedure:
			getBalanceSheet.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("sharesplit.v1.ExpenseService.CreateExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("sharesplit.v1.ExpenseService.GetExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListMyExpenses(context.Context, *connect.Request[api.ListMyExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("sharesplit.v1.ExpenseService.ListMyExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("sharesplit.v1.ExpenseService.ListExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetBalanceSheet(context.Context, *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("sharesplit.v1.ExpenseService.GetBalanceSheet is not implemented"))
}
