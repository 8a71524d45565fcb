package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedlot/internal/service/reporting"
)

type mockReporter struct{ mock.Mock }

func (m *mockReporter) BuildDigest(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockReporter) ExportScenarios(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendText(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

func TestScheduler_RunOnceSendsDigest(t *testing.T) {
	reporter := new(mockReporter)
	reporter.On("ExportScenarios", mock.Anything).Return(reporting.ErrExportDisabled)
	reporter.On("BuildDigest", mock.Anything).Return("Resumo", nil)

	notifier := new(mockNotifier)
	notifier.On("SendText", mock.Anything, "5511", "Resumo").Return("wamid.1", nil).Once()

	s := NewScheduler("0 20 * * 5", time.UTC, reporter, notifier, "5511", nil)

	require.NoError(t, s.RunOnce(context.Background()))
	reporter.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestScheduler_RunOnceExportFailureDoesNotBlockDigest(t *testing.T) {
	reporter := new(mockReporter)
	reporter.On("ExportScenarios", mock.Anything).Return(errors.New("sheets down"))
	reporter.On("BuildDigest", mock.Anything).Return("Resumo", nil)

	s := NewScheduler("0 20 * * 5", time.UTC, reporter, nil, "", nil)

	require.NoError(t, s.RunOnce(context.Background()))
	reporter.AssertCalled(t, "BuildDigest", mock.Anything)
}

func TestScheduler_RunOnceNotifierError(t *testing.T) {
	reporter := new(mockReporter)
	reporter.On("ExportScenarios", mock.Anything).Return(nil)
	reporter.On("BuildDigest", mock.Anything).Return("Resumo", nil)

	notifier := new(mockNotifier)
	notifier.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("invalid token"))

	s := NewScheduler("0 20 * * 5", time.UTC, reporter, notifier, "5511", nil)

	assert.ErrorContains(t, s.RunOnce(context.Background()), "invalid token")
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler("every friday", time.UTC, new(mockReporter), nil, "", nil)

	assert.Error(t, s.Start())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler("0 20 * * 5", time.UTC, new(mockReporter), nil, "", nil)

	require.NoError(t, s.Start())
	s.Stop()
}
