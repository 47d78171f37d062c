// Package apiconnect wires the splitpad.v1.SheetService to Connect handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpad/pkg/api"
)

// SheetServiceName is the fully-qualified name of the SheetService service.
const SheetServiceName = "splitpad.v1.SheetService"

// Procedure paths for each SheetService method.
const (
	SheetServiceGetSheetProcedure          = "/splitpad.v1.SheetService/GetSheet"
	SheetServiceAddParticipantProcedure    = "/splitpad.v1.SheetService/AddParticipant"
	SheetServiceRemoveParticipantProcedure = "/splitpad.v1.SheetService/RemoveParticipant"
	SheetServiceAddExpenseProcedure        = "/splitpad.v1.SheetService/AddExpense"
	SheetServiceRemoveExpenseProcedure     = "/splitpad.v1.SheetService/RemoveExpense"
	SheetServiceResetSheetProcedure        = "/splitpad.v1.SheetService/ResetSheet"
	SheetServiceCalculateProcedure         = "/splitpad.v1.SheetService/Calculate"
)

// SheetServiceHandler is implemented by the server side of SheetService.
type SheetServiceHandler interface {
	GetSheet(context.Context, *connect.Request[api.GetSheetRequest]) (*connect.Response[api.GetSheetResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.MutationResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.MutationResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.MutationResponse], error)
	ResetSheet(context.Context, *connect.Request[api.ResetSheetRequest]) (*connect.Response[api.MutationResponse], error)
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
}

// NewSheetServiceHandler builds an HTTP handler for SheetService. It returns the path
// prefix to mount the handler on.
func NewSheetServiceHandler(svc SheetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)

	routes := map[string]http.Handler{
		SheetServiceGetSheetProcedure:          connect.NewUnaryHandler(SheetServiceGetSheetProcedure, svc.GetSheet, opts...),
		SheetServiceAddParticipantProcedure:    connect.NewUnaryHandler(SheetServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		SheetServiceRemoveParticipantProcedure: connect.NewUnaryHandler(SheetServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		SheetServiceAddExpenseProcedure:        connect.NewUnaryHandler(SheetServiceAddExpenseProcedure, svc.AddExpense, opts...),
		SheetServiceRemoveExpenseProcedure:     connect.NewUnaryHandler(SheetServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...),
		SheetServiceResetSheetProcedure:        connect.NewUnaryHandler(SheetServiceResetSheetProcedure, svc.ResetSheet, opts...),
		SheetServiceCalculateProcedure:         connect.NewUnaryHandler(SheetServiceCalculateProcedure, svc.Calculate, opts...),
	}

	return "/" + SheetServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// SheetServiceClient is a client for SheetService.
type SheetServiceClient interface {
	GetSheet(context.Context, *connect.Request[api.GetSheetRequest]) (*connect.Response[api.GetSheetResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.MutationResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.MutationResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.MutationResponse], error)
	ResetSheet(context.Context, *connect.Request[api.ResetSheetRequest]) (*connect.Response[api.MutationResponse], error)
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
}

// NewSheetServiceClient constructs a client for SheetService at baseURL
// (e.g. http://localhost:8080).
func NewSheetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SheetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &sheetServiceClient{
		getSheet:          connect.NewClient[api.GetSheetRequest, api.GetSheetResponse](httpClient, baseURL+SheetServiceGetSheetProcedure, opts...),
		addParticipant:    connect.NewClient[api.AddParticipantRequest, api.MutationResponse](httpClient, baseURL+SheetServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[api.RemoveParticipantRequest, api.MutationResponse](httpClient, baseURL+SheetServiceRemoveParticipantProcedure, opts...),
		addExpense:        connect.NewClient[api.AddExpenseRequest, api.MutationResponse](httpClient, baseURL+SheetServiceAddExpenseProcedure, opts...),
		removeExpense:     connect.NewClient[api.RemoveExpenseRequest, api.MutationResponse](httpClient, baseURL+SheetServiceRemoveExpenseProcedure, opts...),
		resetSheet:        connect.NewClient[api.ResetSheetRequest, api.MutationResponse](httpClient, baseURL+SheetServiceResetSheetProcedure, opts...),
		calculate:         connect.NewClient[api.CalculateRequest, api.CalculateResponse](httpClient, baseURL+SheetServiceCalculateProcedure, opts...),
	}
}

type sheetServiceClient struct {
	getSheet          *connect.Client[api.GetSheetRequest, api.GetSheetResponse]
	addParticipant    *connect.Client[api.AddParticipantRequest, api.MutationResponse]
	removeParticipant *connect.Client[api.RemoveParticipantRequest, api.MutationResponse]
	addExpense        *connect.Client[api.AddExpenseRequest, api.MutationResponse]
	removeExpense     *connect.Client[api.RemoveExpenseRequest, api.MutationResponse]
	resetSheet        *connect.Client[api.ResetSheetRequest, api.MutationResponse]
	calculate         *connect.Client[api.CalculateRequest, api.CalculateResponse]
}

func (c *sheetServiceClient) GetSheet(ctx context.Context, req *connect.Request[api.GetSheetRequest]) (*connect.Response[api.GetSheetResponse], error) {
	return c.getSheet.CallUnary(ctx, req)
}

func (c *sheetServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *sheetServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *sheetServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *sheetServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *sheetServiceClient) ResetSheet(ctx context.Context, req *connect.Request[api.ResetSheetRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.resetSheet.CallUnary(ctx, req)
}

func (c *sheetServiceClient) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

// UnimplementedSheetServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSheetServiceHandler struct{}

func (UnimplementedSheetServiceHandler) GetSheet(context.Context, *connect.Request[api.GetSheetRequest]) (*connect.Response[api.GetSheetResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitpad.v1.SheetService.GetSheet is not implemented"))
}

func (UnimplementedSheetServiceHandler) AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.MutationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitpad.v1.SheetService.AddParticipant is not implemented"))
}

func (UnimplementedSheetServiceHandler) RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.MutationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitpad.v1.SheetService.RemoveParticipant is not implemented"))
}

func (UnimplementedSheetServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitpad.v1.SheetService.AddExpense is not implemented"))
}

func (UnimplementedSheetServiceHandler) RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.MutationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitpad.v1.SheetService.RemoveExpense is not implemented"))
}

func (UnimplementedSheetServiceHandler) ResetSheet(context.Context, *connect.Request[api.ResetSheetRequest]) (*connect.Response[api.MutationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitpad.v1.SheetService.ResetSheet is not implemented"))
}

func (UnimplementedSheetServiceHandler) Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitpad.v1.SheetService.Calculate is not implemented"))
}
