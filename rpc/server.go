package rpc

import (
	"context"
	"errors"
	"io"
	"net"
	"reflect"
	"sync"

	"github.com/gotomicro/ekit/bean/option"
	"go.uber.org/zap"

	"channelcall/internal/errs"
	"channelcall/rpc/compress"
	"channelcall/rpc/compress/gzip"
	"channelcall/rpc/compress/lz4"
	"channelcall/rpc/compress/snappy"
	"channelcall/rpc/compress/zlib"
	"channelcall/rpc/message"
	"channelcall/rpc/serialize"
	"channelcall/rpc/serialize/json"
	"channelcall/rpc/serialize/proto"
	"channelcall/rpc/tcp"
)

// Server -> tcp conn Server
type Server struct {
	logger      *zap.Logger
	services    map[string]*reflectionStub
	serializers []serialize.Serializer
	compressors []compress.Compressor

	mutex    sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
}

// ServerWithLogger -> option
func ServerWithLogger(logger *zap.Logger) option.Option[Server] {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer instance with every built-in serializer and compressor registered
func NewServer(opts ...option.Option[Server]) *Server {
	res := &Server{
		logger:   zap.NewNop(),
		services: make(map[string]*reflectionStub, 8),
		// a code is one byte, so 256 slots cover every implementation
		serializers: make([]serialize.Serializer, 256),
		compressors: make([]compress.Compressor, 256),
		conns:       make(map[net.Conn]struct{}, 8),
	}
	res.RegisterSerializer(json.Serializer{})
	res.RegisterSerializer(proto.Serializer{})
	res.RegisterCompressor(compress.DoNothingCompressor{})
	res.RegisterCompressor(gzip.Compressor{})
	res.RegisterCompressor(zlib.Compressor{})
	res.RegisterCompressor(snappy.Compressor{})
	res.RegisterCompressor(lz4.Compressor{})
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// RegisterService -> Service stub
func (s *Server) RegisterService(service Service) error {
	if service == nil {
		return errs.NilServiceError
	}
	if service.Name() == "" {
		return errs.InvalidServiceName
	}
	val := reflect.ValueOf(service)
	typ := val.Type()
	methods := make(map[string]reflect.Value, val.NumMethod())
	for i := 0; i < val.NumMethod(); i++ {
		methodTyp := typ.Method(i)
		if !isHandlerFunc(methodTyp.Type) {
			continue
		}
		methods[methodTyp.Name] = val.Method(i)
	}
	s.services[service.Name()] = &reflectionStub{
		s:           service,
		methods:     methods,
		serializers: s.serializers,
		compressors: s.compressors,
	}
	return nil
}

// isHandlerFunc accepts methods shaped func(ctx, *Req) (*Resp, error);
// the receiver is the first input of a method type.
func isHandlerFunc(typ reflect.Type) bool {
	return typ.NumIn() == 3 && typ.In(1) == contextTyp && typ.In(2).Kind() == reflect.Pointer &&
		typ.NumOut() == 2 && typ.Out(1) == errorTyp
}

// RegisterSerializer -> register serializer
func (s *Server) RegisterSerializer(serializer serialize.Serializer) {
	s.serializers[serializer.Code()] = serializer
}

// RegisterCompressor -> register compressor
func (s *Server) RegisterCompressor(compressor compress.Compressor) {
	s.compressors[compressor.Code()] = compressor
}

// Start -> listen on address and serve until Close
func (s *Server) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve -> accept connections from listener until Close
func (s *Server) Serve(listener net.Listener) error {
	s.mutex.Lock()
	s.listener = listener
	s.mutex.Unlock()
	for {
		conn, err := listener.Accept()
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		if err != nil {
			s.logger.Error("rpc: accept connection failed", zap.Error(err))
			continue
		}
		s.track(conn, true)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.track(conn, false)
			s.handleConn(conn)
		}()
	}
}

func (s *Server) track(conn net.Conn, add bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if add {
		s.conns[conn] = struct{}{}
		return
	}
	delete(s.conns, conn)
}

// Close -> stop accepting, drop open connections and wait for handlers
func (s *Server) Close() error {
	s.mutex.Lock()
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mutex.Unlock()
	s.wg.Wait()
	return err
}

// handleConn -> serve requests of one connection until the peer closes it
func (s *Server) handleConn(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()
	logger := s.logger.With(zap.Stringer("remote", conn.RemoteAddr()))
	for {
		bs, err := tcp.ReadMsg(conn)
		if errors.Is(err, io.EOF) {
			// the client half-closed, it is waiting for us to finish
			return
		}
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				logger.Warn("rpc: read request failed", zap.Error(err))
			}
			return
		}
		req, err := message.DecodeReq(bs)
		if err != nil {
			logger.Warn("rpc: decode request failed", zap.Error(err))
			return
		}
		ctx, cancel := incomingContext(req.Meta)
		resp := s.Invoke(ctx, req)
		cancel()
		if req.Meta[metaOneway] == "true" {
			// nothing to send back, go on with the next request
			continue
		}
		resp.CalculateHeaderLength()
		resp.CalculateBodyLength()
		if _, err = conn.Write(message.EncodeResp(resp)); err != nil {
			logger.Warn("rpc: sending response failed", zap.Error(err))
			return
		}
	}
}

// Invoke -> dispatch req to the registered service
func (s *Server) Invoke(ctx context.Context, req *message.Request) *message.Response {
	stub, ok := s.services[req.ServiceName]
	if !ok {
		return &message.Response{
			Version:    req.Version,
			Compresser: req.Compresser,
			Serializer: req.Serializer,
			MessageId:  req.MessageId,
			Error:      []byte(errs.InvalidServiceName.Error()),
		}
	}
	return stub.Invoke(ctx, req)
}

// reflectionStub -> service stub
type reflectionStub struct {
	s           Service
	serializers []serialize.Serializer
	compressors []compress.Compressor
	methods     map[string]reflect.Value
}

// Invoke -> stub execute method by reflect
func (s *reflectionStub) Invoke(ctx context.Context, req *message.Request) *message.Response {
	response := &message.Response{
		Version:    req.Version,
		Compresser: req.Compresser,
		Serializer: req.Serializer,
		MessageId:  req.MessageId,
	}
	fail := func(err error) *message.Response {
		response.Error = []byte(err.Error())
		return response
	}
	method, ok := s.methods[req.MethodName]
	if !ok {
		return fail(errs.NotFoundServiceMethod(req.MethodName))
	}
	compressor := s.compressors[req.Compresser]
	if compressor == nil {
		return fail(errs.UnsupportedCompressor(req.Compresser))
	}
	serializer := s.serializers[req.Serializer]
	if serializer == nil {
		return fail(errs.UnsupportedSerializer(req.Serializer))
	}

	in := reflect.New(method.Type().In(1).Elem())
	reqData, err := compressor.Uncompress(req.Data)
	if err != nil {
		return fail(err)
	}
	if err = serializer.Decode(reqData, in.Interface()); err != nil {
		return fail(err)
	}
	res := method.Call([]reflect.Value{reflect.ValueOf(ctx), in})
	if errVal := res[1].Interface(); errVal != nil {
		return fail(errVal.(error))
	}
	respData, err := serializer.Encode(res[0].Interface())
	if err != nil {
		return fail(err)
	}
	respData, err = compressor.Compress(respData)
	if err != nil {
		return fail(err)
	}
	response.Data = respData
	return response
}
