package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"foodcourt/tracker-svc/internal/domain"
)

type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) AppendStatus(ctx context.Context, orderID, status string, at time.Time) error {
	ret := _m.Called(ctx, orderID, status, at)
	return ret.Error(0)
}

func (_m *StoreInterface) RecordSale(ctx context.Context, items []domain.EventItem, at time.Time) error {
	ret := _m.Called(ctx, items, at)
	return ret.Error(0)
}

func (_m *StoreInterface) UpdateItemRating(ctx context.Context, menuItemID string) error {
	ret := _m.Called(ctx, menuItemID)
	return ret.Error(0)
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
