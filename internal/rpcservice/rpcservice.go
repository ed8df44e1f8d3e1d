// Package rpcservice exposes internal/types.Assign over gRPC without
// generated .pb.go stubs: the .proto schema is parsed at process start
// with jhump/protoreflect's protoparse.Parser, and requests and
// responses are built and read as dynamic.Message values instead of
// generated structs.
package rpcservice

import (
	"context"
	"embed"
	"fmt"
	"net"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"github.com/jhump/protoreflect/dynamic/grpcdynamic"
	"google.golang.org/grpc"

	"github.com/shapelang/shapec/internal/config"
	"github.com/shapelang/shapec/internal/types"
	"github.com/shapelang/shapec/internal/types/wire"
)

//go:embed proto/assignability.proto
var protoFS embed.FS

const (
	protoFile   = "assignability.proto"
	serviceName = "shapec.Assignability"
	methodName  = "Check"
)

// Descriptors holds the runtime-loaded proto schema: the service
// descriptor and both message descriptors.
type Descriptors struct {
	Service *desc.ServiceDescriptor
	Method  *desc.MethodDescriptor
	Request *desc.MessageDescriptor
	Reply   *desc.MessageDescriptor
}

// LoadDescriptors parses proto/assignability.proto at runtime. The schema
// ships embedded in the binary instead of being read from the filesystem,
// since it is fixed rather than user-declared.
func LoadDescriptors() (*Descriptors, error) {
	data, err := protoFS.ReadFile("proto/" + protoFile)
	if err != nil {
		return nil, fmt.Errorf("rpcservice: read embedded proto: %w", err)
	}
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{protoFile: string(data)}),
	}
	fds, err := parser.ParseFiles(protoFile)
	if err != nil {
		return nil, fmt.Errorf("rpcservice: parse proto: %w", err)
	}
	fd := fds[0]
	svc := fd.FindService(serviceName)
	if svc == nil {
		return nil, fmt.Errorf("rpcservice: service %s not found in schema", serviceName)
	}
	method := svc.FindMethodByName(methodName)
	if method == nil {
		return nil, fmt.Errorf("rpcservice: method %s not found on %s", methodName, serviceName)
	}
	return &Descriptors{
		Service: svc,
		Method:  method,
		Request: method.GetInputType(),
		Reply:   method.GetOutputType(),
	}, nil
}

// Checker is anything that can decide an assignability query; it is
// satisfied directly by internal/types.Assign and by internal/cache's
// memoized variant, so the server can be wired to either.
type Checker func(l, r types.Type, loc types.SourceLoc, cfg config.Config) error

// Server is a gRPC server exposing Checker as the Assignability.Check
// unary RPC, built entirely from dynamic messages (no generated stubs).
type Server struct {
	descriptors *Descriptors
	check       Checker
}

// NewServer builds a Server bound to check.
func NewServer(d *Descriptors, check Checker) *Server {
	return &Server{descriptors: d, check: check}
}

// handleCheck serves one Check call for the unary handler built in
// serviceDesc, reading and writing dynamic.Message values per the schema
// above.
func (s *Server) handleCheck(ctx context.Context, in *dynamic.Message) (*dynamic.Message, error) {
	left, err := wire.DecodeType(in.GetFieldByName("left").(string))
	if err != nil {
		return nil, fmt.Errorf("rpcservice: decode left: %w", err)
	}
	right, err := wire.DecodeType(in.GetFieldByName("right").(string))
	if err != nil {
		return nil, fmt.Errorf("rpcservice: decode right: %w", err)
	}
	strict, _ := in.GetFieldByName("strict_null_checks").(bool)
	cfg := config.Config{StrictNullChecks: strict}

	assignErr := s.check(left, right, types.SourceLoc{File: "rpc"}, cfg)

	out := dynamic.NewMessage(s.descriptors.Reply)
	if assignErr == nil {
		out.SetFieldByName("ok", true)
		return out, nil
	}
	out.SetFieldByName("ok", false)
	encoded, encErr := wire.EncodeError(assignErr)
	if encErr != nil {
		return nil, fmt.Errorf("rpcservice: encode error: %w", encErr)
	}
	out.SetFieldByName("error", encoded)
	return out, nil
}

// serviceDesc hand-builds a grpc.ServiceDesc for the dynamically-loaded
// service, wiring handleCheck as the sole unary method.
func (s *Server) serviceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: methodName,
				Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
					in := dynamic.NewMessage(s.descriptors.Request)
					if err := dec(in); err != nil {
						return nil, err
					}
					return s.handleCheck(ctx, in)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: protoFile,
	}
}

// Serve registers the service on a fresh *grpc.Server and blocks serving
// on addr until the listener errors or the server is stopped.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("rpcservice: listen %s: %w", addr, err)
	}
	gs := grpc.NewServer()
	gs.RegisterService(s.serviceDesc(), nil)
	return gs.Serve(lis)
}

// Client invokes Assignability.Check against a running Server, also
// without generated stubs, via grpcdynamic.Stub.
type Client struct {
	stub        grpcdynamic.Stub
	descriptors *Descriptors
}

// NewClient builds a Client over an existing gRPC connection.
func NewClient(cc grpc.ClientConnInterface, d *Descriptors) *Client {
	return &Client{stub: grpcdynamic.NewStub(cc), descriptors: d}
}

// Check performs one Assignability.Check RPC.
func (c *Client) Check(ctx context.Context, l, r types.Type, cfg config.Config) error {
	leftWire, err := wire.EncodeType(l)
	if err != nil {
		return fmt.Errorf("rpcservice: encode left: %w", err)
	}
	rightWire, err := wire.EncodeType(r)
	if err != nil {
		return fmt.Errorf("rpcservice: encode right: %w", err)
	}

	req := dynamic.NewMessage(c.descriptors.Request)
	req.SetFieldByName("left", leftWire)
	req.SetFieldByName("right", rightWire)
	req.SetFieldByName("strict_null_checks", cfg.StrictNullChecks)

	resp, err := c.stub.InvokeRpc(ctx, c.descriptors.Method, req)
	if err != nil {
		return fmt.Errorf("rpcservice: invoke: %w", err)
	}
	out, ok := resp.(*dynamic.Message)
	if !ok {
		return fmt.Errorf("rpcservice: unexpected response type %T", resp)
	}
	if ok, _ := out.GetFieldByName("ok").(bool); ok {
		return nil
	}
	errJSON, _ := out.GetFieldByName("error").(string)
	decoded, decErr := wire.DecodeError(errJSON)
	if decErr != nil {
		return fmt.Errorf("rpcservice: decode error payload: %w", decErr)
	}
	return decoded
}
