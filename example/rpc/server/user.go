package main

import (
	"context"
	"errors"
	"time"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type User struct {
	Id         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CreateTime int64  `json:"create_time"`
}

type FindByUserIdReq struct {
	Id int64 `json:"id"`
}

type FindByUserIdResp struct {
	User *User `json:"user"`
}

type UserService struct {
}

func (u *UserService) GetById(ctx context.Context, req *FindByUserIdReq) (*FindByUserIdResp, error) {
	return &FindByUserIdResp{
		User: &User{
			Id:         req.Id,
			Name:       "Tom",
			Email:      "xxx@xxx.com",
			CreateTime: time.Now().Unix(),
		},
	}, nil
}

func (u *UserService) AlwaysError(ctx context.Context, req *FindByUserIdReq) (*FindByUserIdResp, error) {
	return nil, errors.New("this is an error")
}

func (u *UserService) Name() string {
	return "user"
}

// UserServiceProto serves the protobuf serializer.
type UserServiceProto struct {
}

func (u *UserServiceProto) GetName(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("Tom"), nil
}

func (u *UserServiceProto) Name() string {
	return "user-proto"
}
