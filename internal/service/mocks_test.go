package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/request-analytics/internal/cache"
	"github.com/spec-kit/request-analytics/internal/domain"
)

type mockRequestRepository struct {
	mock.Mock
}

func (m *mockRequestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	args := m.Called(ctx)
	requests, _ := args.Get(0).([]domain.Request)
	return requests, args.Error(1)
}

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) ListAll(ctx context.Context) ([]domain.ContactMessage, error) {
	args := m.Called(ctx)
	messages, _ := args.Get(0).([]domain.ContactMessage)
	return messages, args.Error(1)
}

type mockStaffRepository struct {
	mock.Mock
}

func (m *mockStaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	args := m.Called(ctx, id)
	staff, _ := args.Get(0).(*domain.StaffMember)
	return staff, args.Error(1)
}

func (m *mockStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	args := m.Called(ctx, email)
	staff, _ := args.Get(0).(*domain.StaffMember)
	return staff, args.Error(1)
}

type mockReportCache struct {
	mock.Mock
}

func (m *mockReportCache) Get(ctx context.Context, key string) (*cache.Entry, bool, error) {
	args := m.Called(ctx, key)
	entry, _ := args.Get(0).(*cache.Entry)
	return entry, args.Bool(1), args.Error(2)
}

func (m *mockReportCache) Set(ctx context.Context, key string, entry cache.Entry) error {
	args := m.Called(ctx, key, entry)
	return args.Error(0)
}
