package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/costguard/costguard/pkg/models/domain"
	"github.com/costguard/costguard/pkg/services/mapping"
	"github.com/costguard/costguard/pkg/services/metering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) FetchHourlyUsage(ctx context.Context, productFamily string, start, end time.Time) (any, error) {
	args := m.Called(ctx, productFamily, start, end)
	return args.Get(0), args.Error(1)
}

type mockCommitments struct {
	mock.Mock
}

func (m *mockCommitments) GetCommitment(ctx context.Context, service, dimension string) (domain.Commitment, error) {
	args := m.Called(ctx, service, dimension)
	return args.Get(0).(domain.Commitment), args.Error(1)
}

func fixedController(client metering.Client, commitments CommitmentSource) *controller {
	c := NewController(mapping.NewRegistry(), client, commitments).(*controller)
	c.now = func() time.Time { return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC) }
	return c
}

func TestController_GetServiceUsage(t *testing.T) {
	client := new(mockClient)
	commitments := new(mockCommitments)
	ctrl := fixedController(client, commitments)

	client.On("FetchHourlyUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]any{"data": []any{}}, nil)
	commitments.On("GetCommitment", mock.Anything, "logs", mock.Anything).
		Return(domain.Commitment{Committed: 1000}, nil)

	svc, err := ctrl.GetServiceUsage(context.Background(), "logs")

	require.NoError(t, err)
	assert.Equal(t, "logs", svc.Service)
	require.Len(t, svc.Dimensions, 2)
	for _, d := range svc.Dimensions {
		assert.False(t, d.Failed)
		assert.Equal(t, 1000.0, d.Committed)
		assert.Equal(t, 10, d.DaysElapsed)
		assert.Equal(t, 21, d.DaysRemaining)
	}
	client.AssertNumberOfCalls(t, "FetchHourlyUsage", 2)
}

func TestController_GetServiceUsage_FetchFailureYieldsErrorRecord(t *testing.T) {
	client := new(mockClient)
	commitments := new(mockCommitments)
	ctrl := fixedController(client, commitments)

	client.On("FetchHourlyUsage", mock.Anything, "rum", mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream timeout"))

	svc, err := ctrl.GetServiceUsage(context.Background(), "rum")

	require.NoError(t, err)
	require.Len(t, svc.Dimensions, 1)
	assert.True(t, svc.Dimensions[0].Failed)
	assert.Equal(t, "upstream timeout", svc.Dimensions[0].Message)
	assert.Zero(t, svc.Dimensions[0].Usage)
}

func TestController_GetServiceUsage_RateLimitPropagates(t *testing.T) {
	client := new(mockClient)
	commitments := new(mockCommitments)
	ctrl := fixedController(client, commitments)

	client.On("FetchHourlyUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, metering.ErrRateLimited)

	_, err := ctrl.GetServiceUsage(context.Background(), "logs")

	assert.True(t, errors.Is(err, metering.ErrRateLimited))
}

func TestController_GetServiceUsage_UnknownService(t *testing.T) {
	ctrl := fixedController(new(mockClient), new(mockCommitments))

	_, err := ctrl.GetServiceUsage(context.Background(), "nope")
	assert.Error(t, err)
}

func TestController_GetDimensionUsage_CommitmentLookupFailureDegrades(t *testing.T) {
	client := new(mockClient)
	commitments := new(mockCommitments)
	ctrl := fixedController(client, commitments)

	client.On("FetchHourlyUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]any{"data": []any{}}, nil)
	commitments.On("GetCommitment", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Commitment{}, errors.New("store offline"))

	record, err := ctrl.GetDimensionUsage(context.Background(), "indexed_logs")

	require.NoError(t, err)
	assert.False(t, record.Failed)
	assert.Zero(t, record.Committed)
}
