package itinerary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-itinerary/config"
)

// --- Mocks for Dependencies ---

// MockAIClient satisfies generativeAI.Client.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, cfg)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{}
}

const validModelOutput = "```json\n" + `{
	"destination": "Paris",
	"days": 3,
	"budget": 1000,
	"interests": ["Food", "Heritage"],
	"plan": [{"day": 1, "activities": ["Louvre"]}],
	"cost_breakdown": {"food": {"lunch": 10}, "transport": 20}
}` + "\n```"

func TestGenerate_SecondCallServedFromCache(t *testing.T) {
	mockAI := new(MockAIClient)
	mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(validModelOutput, nil).Once()

	service := NewService(mockAI, testConfig(), testLogger())

	first := service.Generate(context.Background(), baseRequest())
	require.False(t, first.Failed())
	assert.False(t, first.FromCache)

	// Same parameters with interests reordered: same fingerprint, no new
	// external call.
	reordered := baseRequest()
	reordered.Interests = []string{"Heritage", "Food"}
	second := service.Generate(context.Background(), reordered)
	require.False(t, second.Failed())
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.Itinerary, second.Itinerary)

	mockAI.AssertNumberOfCalls(t, "GenerateContent", 1)
}

func TestGenerate_CallFailureReturnsErrorResult(t *testing.T) {
	mockAI := new(MockAIClient)
	mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("model unavailable")).Once()

	service := NewService(mockAI, testConfig(), testLogger())

	result := service.Generate(context.Background(), baseRequest())
	require.True(t, result.Failed())
	assert.Contains(t, result.Err.Reason, "itinerary generation failed")
	assert.Nil(t, result.Itinerary)
}

func TestGenerate_MalformedOutputNotCached(t *testing.T) {
	mockAI := new(MockAIClient)
	// First call returns garbage, second call succeeds: the failure must not
	// have been cached, so the retry reaches the model again.
	mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("```json\nnot json at all\n```", nil).Once()
	mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(validModelOutput, nil).Once()

	service := NewService(mockAI, testConfig(), testLogger())

	failed := service.Generate(context.Background(), baseRequest())
	require.True(t, failed.Failed())
	assert.Contains(t, failed.Err.Reason, "Invalid JSON response")

	retried := service.Generate(context.Background(), baseRequest())
	require.False(t, retried.Failed())
	assert.False(t, retried.FromCache)

	mockAI.AssertNumberOfCalls(t, "GenerateContent", 2)
}

func TestGenerate_ModelCallDetachedFromCallerCancellation(t *testing.T) {
	mockAI := new(MockAIClient)
	var callErr error
	mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			callErr = args.Get(0).(context.Context).Err()
		}).
		Return(validModelOutput, nil).Once()

	service := NewService(mockAI, testConfig(), testLogger())

	// The flight can be shared with other waiters, so the initiating
	// caller's cancellation must not reach the model call.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := service.Generate(ctx, baseRequest())
	require.False(t, result.Failed())
	assert.NoError(t, callErr)
}

func TestGenerate_DemoModeWithoutClient(t *testing.T) {
	service := NewService(nil, testConfig(), testLogger())

	req := baseRequest()
	result := service.Generate(context.Background(), req)
	require.False(t, result.Failed())
	require.NotNil(t, result.Itinerary)
	assert.Equal(t, req.Destination, result.Itinerary.Destination)
	assert.Equal(t, req.Days, result.Itinerary.Days)
	assert.NotEmpty(t, result.Itinerary.Plan)

	// Demo documents are cached like real ones.
	second := service.Generate(context.Background(), req)
	assert.True(t, second.FromCache)
}

func TestGenerate_InvalidRequestRejected(t *testing.T) {
	service := NewService(nil, testConfig(), testLogger())

	req := baseRequest()
	req.Budget = -10
	result := service.Generate(context.Background(), req)
	assert.True(t, result.Failed())
}

func TestClearCache(t *testing.T) {
	service := NewService(nil, testConfig(), testLogger())

	req := baseRequest()
	_ = service.Generate(context.Background(), req)
	service.ClearCache()

	result := service.Generate(context.Background(), req)
	assert.False(t, result.FromCache)
}
