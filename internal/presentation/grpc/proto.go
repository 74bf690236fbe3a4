package grpc

// proto.go hand-writes the service descriptor and messages of
// qarz.desk.v1.DeskService. Messages travel through the JSON codec.

import (
	"context"

	"github.com/shopspring/decimal"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
)

const (
	DeskServiceName     = "qarz.desk.v1.DeskService"
	LookupByTokenMethod = "/" + DeskServiceName + "/LookupByToken"
	GetSlipMethod       = "/" + DeskServiceName + "/GetSlip"
	CalculateMethod     = "/" + DeskServiceName + "/Calculate"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type LookupByTokenRequest struct {
	TokenNumber string `json:"tokenNumber"`
}

type LoanRequestReply struct {
	LoanRequest dto.LoanRequestResponse `json:"loanRequest"`
}

type GetSlipRequest struct {
	LoanRequestID string `json:"loanRequestId"`
}

type SlipReply struct {
	Slip dto.SlipResponse `json:"slip"`
}

type CalculateRequest struct {
	Category       string          `json:"category"`
	LoanAmount     decimal.Decimal `json:"loanAmount"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	PeriodMonths   int             `json:"periodMonths"`
}

type CalculationReply struct {
	Calculation dto.LoanCalculationResponse `json:"calculation"`
}

// ---------------------------------------------------------------------------
// Server side
// ---------------------------------------------------------------------------

// DeskServiceServer is the server API for DeskService.
type DeskServiceServer interface {
	LookupByToken(context.Context, *LookupByTokenRequest) (*LoanRequestReply, error)
	GetSlip(context.Context, *GetSlipRequest) (*SlipReply, error)
	Calculate(context.Context, *CalculateRequest) (*CalculationReply, error)
	mustEmbedUnimplementedDeskServiceServer()
}

// UnimplementedDeskServiceServer provides forward-compatible default implementations.
type UnimplementedDeskServiceServer struct{}

func (UnimplementedDeskServiceServer) LookupByToken(context.Context, *LookupByTokenRequest) (*LoanRequestReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LookupByToken not implemented")
}
func (UnimplementedDeskServiceServer) GetSlip(context.Context, *GetSlipRequest) (*SlipReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSlip not implemented")
}
func (UnimplementedDeskServiceServer) Calculate(context.Context, *CalculateRequest) (*CalculationReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Calculate not implemented")
}
func (UnimplementedDeskServiceServer) mustEmbedUnimplementedDeskServiceServer() {}

// RegisterDeskServiceServer registers srv with the gRPC server.
func RegisterDeskServiceServer(s grpclib.ServiceRegistrar, srv DeskServiceServer) {
	s.RegisterService(&deskServiceDesc, srv)
}

var deskServiceDesc = grpclib.ServiceDesc{
	ServiceName: DeskServiceName,
	HandlerType: (*DeskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "LookupByToken", Handler: lookupByTokenHandler},
		{MethodName: "GetSlip", Handler: getSlipHandler},
		{MethodName: "Calculate", Handler: calculateHandler},
	},
	Streams: []grpclib.StreamDesc{},
}

// unary adapts a typed method to the descriptor's handler signature.
func unary[Req any, Resp any](
	method string,
	call func(DeskServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DeskServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DeskServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	lookupByTokenHandler = unary(LookupByTokenMethod, DeskServiceServer.LookupByToken)
	getSlipHandler       = unary(GetSlipMethod, DeskServiceServer.GetSlip)
	calculateHandler     = unary(CalculateMethod, DeskServiceServer.Calculate)
)

// ---------------------------------------------------------------------------
// Client side
// ---------------------------------------------------------------------------

// DeskServiceClient calls DeskService over an existing connection.
type DeskServiceClient struct {
	cc grpclib.ClientConnInterface
}

func NewDeskServiceClient(cc grpclib.ClientConnInterface) *DeskServiceClient {
	return &DeskServiceClient{cc: cc}
}

func (c *DeskServiceClient) LookupByToken(ctx context.Context, in *LookupByTokenRequest, opts ...grpclib.CallOption) (*LoanRequestReply, error) {
	out := new(LoanRequestReply)
	if err := c.cc.Invoke(ctx, LookupByTokenMethod, in, out, append(opts, JSONCallOption())...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DeskServiceClient) GetSlip(ctx context.Context, in *GetSlipRequest, opts ...grpclib.CallOption) (*SlipReply, error) {
	out := new(SlipReply)
	if err := c.cc.Invoke(ctx, GetSlipMethod, in, out, append(opts, JSONCallOption())...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DeskServiceClient) Calculate(ctx context.Context, in *CalculateRequest, opts ...grpclib.CallOption) (*CalculationReply, error) {
	out := new(CalculationReply)
	if err := c.cc.Invoke(ctx, CalculateMethod, in, out, append(opts, JSONCallOption())...); err != nil {
		return nil, err
	}
	return out, nil
}
