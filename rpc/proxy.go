package rpc

import (
	"context"
	"reflect"

	"channelcall/internal/errs"
)

// Bind fills the func fields of service with calls over ch. Every settable
// field must look like
//
//	func(ctx context.Context, req *Req) (*Resp, error)
//
// and is named after the remote method.
func Bind(ch *Channel, service Service) error {
	return setFuncField(service, ch.Call)
}

type callFunc func(ctx context.Context, service, method string, req, resp any) error

// setFuncField is split out so tests can pass a fake call
func setFuncField(service Service, call callFunc) error {
	if service == nil {
		return errs.NilServiceError
	}
	val := reflect.ValueOf(service)
	if val.Kind() != reflect.Pointer || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return errs.ServiceTypError
	}
	valElem := val.Elem()
	typElem := valElem.Type()
	for i := 0; i < typElem.NumField(); i++ {
		fieldTyp := typElem.Field(i)
		fieldVal := valElem.Field(i)
		if !fieldVal.CanSet() || fieldTyp.Type.Kind() != reflect.Func {
			continue
		}
		if !isStubFunc(fieldTyp.Type) {
			return errs.InvalidStubField(fieldTyp.Name)
		}
		fieldVal.Set(reflect.MakeFunc(fieldTyp.Type, newStubFunc(service.Name(), fieldTyp, call)))
	}
	return nil
}

var (
	contextTyp = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorTyp   = reflect.TypeOf((*error)(nil)).Elem()
)

func isStubFunc(typ reflect.Type) bool {
	return typ.NumIn() == 2 && typ.In(0) == contextTyp &&
		typ.NumOut() == 2 && typ.Out(0).Kind() == reflect.Pointer && typ.Out(1) == errorTyp
}

func newStubFunc(serviceName string, field reflect.StructField,
	call callFunc) func(args []reflect.Value) []reflect.Value {
	outTyp := field.Type.Out(0)
	return func(args []reflect.Value) []reflect.Value {
		ctx := args[0].Interface().(context.Context)
		in := args[1].Interface()
		out := reflect.New(outTyp.Elem())
		err := call(ctx, serviceName, field.Name, in, out.Interface())
		// reflect.Zero of the error interface type, a bare nil has no type
		errVal := reflect.Zero(errorTyp)
		if err != nil {
			errVal = reflect.ValueOf(&err).Elem()
		}
		return []reflect.Value{out, errVal}
	}
}
