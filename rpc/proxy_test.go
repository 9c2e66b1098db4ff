package rpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channelcall/internal/errs"
)

type badStubClient struct {
	GetById func(req *GetByIdReq) (*GetByIdResp, error)
}

func (b *badStubClient) Name() string {
	return "bad"
}

type valueService struct{}

func (valueService) Name() string {
	return "value"
}

func Test_setFuncField(t *testing.T) {
	testCases := []struct {
		name    string
		service Service
		call    callFunc
		wantErr error

		wantResp *GetByIdResp
		// error returned by the bound stub
		wantCallErr error
	}{
		{
			name:    "nil",
			wantErr: errs.NilServiceError,
		},
		{
			name:    "no pointer",
			service: valueService{},
			wantErr: errs.ServiceTypError,
		},
		{
			name:    "bad field",
			service: &badStubClient{},
			wantErr: errs.InvalidStubField("GetById"),
		},
		{
			name:    "user service",
			service: &UserServiceClient{},
			call: func(ctx context.Context, service, method string, req, resp any) error {
				assert.Equal(t, "user-service", service)
				assert.Equal(t, "GetById", method)
				assert.Equal(t, &GetByIdReq{Id: 12}, req)
				resp.(*GetByIdResp).Msg = "user 12"
				return nil
			},
			wantResp: &GetByIdResp{Msg: "user 12"},
		},
		{
			name:    "call error",
			service: &UserServiceClient{},
			call: func(ctx context.Context, service, method string, req, resp any) error {
				return errors.New("mock error")
			},
			wantResp:    &GetByIdResp{},
			wantCallErr: errors.New("mock error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := setFuncField(tc.service, tc.call)
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			us := tc.service.(*UserServiceClient)
			resp, err := us.GetById(context.Background(), &GetByIdReq{Id: 12})
			assert.Equal(t, tc.wantCallErr, err)
			assert.Equal(t, tc.wantResp, resp)
			require.NotNil(t, us.Fail)
		})
	}
}
