package flights_service_api

import (
	"context"

	"github.com/Domenick1991/airport/internal/api/jsoncodec"
	"google.golang.org/grpc"
)

func RegisterFlightsServiceServer(s grpc.ServiceRegistrar, srv FlightsServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FlightsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListFlights", Handler: listFlightsHandler},
		{MethodName: "GetFlight", Handler: getFlightHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "airport/v1/flights.json",
}

func listFlightsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListFlightsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).ListFlights(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListFlights"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).ListFlights(ctx, req.(*ListFlightsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getFlightHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetFlightRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).GetFlight(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetFlight"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).GetFlight(ctx, req.(*GetFlightRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls FlightsService with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) ListFlights(ctx context.Context, in *ListFlightsRequest, opts ...grpc.CallOption) (*ListFlightsResponse, error) {
	out := new(ListFlightsResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListFlights", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFlight(ctx context.Context, in *GetFlightRequest, opts ...grpc.CallOption) (*Flight, error) {
	out := new(Flight)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetFlight", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
