package support

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/domain/support"
)

// MockChannelRepository is a mock implementation of ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) FindByName(ctx context.Context, name string) ([]int64, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockChannelRepository) Post(ctx context.Context, channelID int64, body string) (int64, error) {
	args := m.Called(ctx, channelID, body)
	return args.Get(0).(int64), args.Error(1)
}

func fakeInquiry() support.Inquiry {
	return support.Inquiry{
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		IssueType: "billing",
		Message:   gofakeit.Phrase(),
	}
}

func TestContactService_SubmitInquiry(t *testing.T) {
	repo := new(MockChannelRepository)
	svc := NewContactService(repo)
	ctx := context.Background()

	inquiry := support.Inquiry{Name: "Ann", Email: "a@b.co", IssueType: "billing", Message: "Hi"}
	repo.On("FindByName", ctx, "General").Return([]int64{3, 9}, nil)
	repo.On("Post", ctx, int64(3), "['Ann', 'a@b.co', 'billing', 'Hi']").Return(int64(77), nil)

	got, err := svc.SubmitInquiry(ctx, inquiry)

	require.NoError(t, err)
	assert.Equal(t, "Inquiry sent successfully.", got.Message)
	assert.Equal(t, int64(3), got.ChannelID)
	assert.Equal(t, int64(77), got.MessageID)
	assert.Equal(t, inquiry, got.PostedData)
	repo.AssertNotCalled(t, "FindByName", ctx, "Support")
}

func TestContactService_SubmitInquiry_FallsBackToSupport(t *testing.T) {
	repo := new(MockChannelRepository)
	svc := NewContactService(repo)
	ctx := context.Background()

	inquiry := fakeInquiry()
	repo.On("FindByName", ctx, "General").Return([]int64{}, nil)
	repo.On("FindByName", ctx, "Support").Return([]int64{12}, nil)
	repo.On("Post", ctx, int64(12), inquiry.Body()).Return(int64(78), nil)

	got, err := svc.SubmitInquiry(ctx, inquiry)

	require.NoError(t, err)
	assert.Equal(t, int64(12), got.ChannelID)
	repo.AssertExpectations(t)
}

func TestContactService_SubmitInquiry_NoChannel(t *testing.T) {
	repo := new(MockChannelRepository)
	svc := NewContactService(repo)
	ctx := context.Background()

	repo.On("FindByName", ctx, mock.Anything).Return([]int64{}, nil)

	_, err := svc.SubmitInquiry(ctx, fakeInquiry())

	assert.ErrorIs(t, err, shared.ErrChannelNotFound)
	repo.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactService_SubmitInquiry_Invalid(t *testing.T) {
	repo := new(MockChannelRepository)
	svc := NewContactService(repo)

	inquiry := fakeInquiry()
	inquiry.Email = "not-an-address"

	_, err := svc.SubmitInquiry(context.Background(), inquiry)

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	repo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestContactService_SubmitInquiry_RemoteFailure(t *testing.T) {
	repo := new(MockChannelRepository)
	svc := NewContactService(repo)
	ctx := context.Background()

	repo.On("FindByName", ctx, "General").Return(nil, shared.ErrAuthentication)

	_, err := svc.SubmitInquiry(ctx, fakeInquiry())

	assert.ErrorIs(t, err, shared.ErrAuthentication)
}
