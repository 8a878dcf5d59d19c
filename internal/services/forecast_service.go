package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soltixdb/salescast/internal/analytics"
	"github.com/soltixdb/salescast/internal/analytics/forecast"
	"github.com/soltixdb/salescast/internal/compression"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/metrics"
	"github.com/soltixdb/salescast/internal/queue"
	"github.com/soltixdb/salescast/internal/utils"
)

// ForecastService builds models, evaluates them and publishes forecast events
type ForecastService struct {
	logger     *logging.Logger
	publisher  queue.Publisher
	compressor compression.Compressor
	recorder   *metrics.Recorder
	subject    string
}

// ForecastOption configures a ForecastService
type ForecastOption func(*ForecastService)

// WithPublisher publishes a ForecastEvent to subject after every forecast
func WithPublisher(p queue.Publisher, subject string, c compression.Compressor) ForecastOption {
	return func(s *ForecastService) {
		s.publisher = p
		s.subject = subject
		if c != nil {
			s.compressor = c
		}
	}
}

// WithMetrics records forecast metrics on r
func WithMetrics(r *metrics.Recorder) ForecastOption {
	return func(s *ForecastService) {
		s.recorder = r
	}
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, opts ...ForecastOption) *ForecastService {
	s := &ForecastService{
		logger:     logger,
		compressor: &compression.NoneCompressor{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForecastRequest represents a forecast request
type ForecastRequest struct {
	Values  []float64
	Method  string
	Periods int
	Config  forecast.Config
	Source  string // Where the values came from, carried into events
}

// ForecastResponse represents the result of a forecast
type ForecastResponse struct {
	ID          string                `json:"id"`
	Method      string                `json:"method"`
	Periods     int                   `json:"periods"`
	Forecast    []float64             `json:"forecast"`
	TrainSize   int                   `json:"train_size"`
	TestSize    int                   `json:"test_size"`
	Evaluation  *forecast.Evaluation  `json:"evaluation,omitempty"`
	Statistics  *analytics.Statistics `json:"statistics,omitempty"`
	GeneratedAt time.Time             `json:"generated_at"`

	// Model is the fitted model; its Latest() holds Forecast
	Model forecast.Model `json:"-"`
}

// ForecastEvent is the message published for each completed forecast
type ForecastEvent struct {
	ID          string    `json:"id"`
	Source      string    `json:"source,omitempty"`
	Method      string    `json:"method"`
	Periods     int       `json:"periods"`
	Forecast    []float64 `json:"forecast"`
	RMSE        *float64  `json:"rmse,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Methods lists the available forecast methods
func (s *ForecastService) Methods() []string {
	return forecast.ListModels()
}

// Execute fits the requested model, backtests it when a test partition exists and
// forecasts req.Periods values
func (s *ForecastService) Execute(ctx context.Context, req *ForecastRequest) (*ForecastResponse, error) {
	start := time.Now()
	logger := s.logger.WithContext(ctx)

	resp, err := s.execute(req)
	if err != nil {
		svcErr := fromForecastError(err)
		s.recordFailure(methodLabel(req.Method), svcErr, time.Since(start))
		logger.Warn("Forecast failed",
			"method", req.Method,
			"periods", req.Periods,
			"code", svcErr.Code,
			"error", err)
		return nil, svcErr
	}

	if s.recorder != nil {
		s.recorder.RecordForecast(resp.Method, metrics.StatusSuccess, time.Since(start))
		if len(resp.Forecast) > 0 {
			s.recorder.RecordLastForecast(resp.Method, resp.Forecast[0])
		}
		if resp.Evaluation != nil {
			s.recorder.RecordRMSE(resp.Method, resp.Evaluation.RMSE)
		}
	}

	s.publish(ctx, req.Source, resp)

	logger.Info("Forecast completed",
		"id", resp.ID,
		"method", resp.Method,
		"periods", resp.Periods,
		"train_size", resp.TrainSize,
		"test_size", resp.TestSize,
		"latency_ms", time.Since(start).Milliseconds())

	return resp, nil
}

func (s *ForecastService) execute(req *ForecastRequest) (*ForecastResponse, error) {
	if !forecast.IsRegistered(req.Method) {
		return nil, NewServiceErrorWithDetails(CodeInvalidMethod,
			fmt.Sprintf("unknown forecast method: %s", req.Method),
			map[string]interface{}{"available_methods": forecast.ListModels()})
	}

	model, err := forecast.NewModel(req.Method, req.Values, req.Config)
	if err != nil {
		return nil, err
	}

	split := model.TrainTestSplit()
	resp := &ForecastResponse{
		ID:        uuid.New().String(),
		Method:    model.Name(),
		Periods:   req.Periods,
		TrainSize: len(split.Train),
		TestSize:  len(split.Test),
		Model:     model,
	}

	// Backtest first so the model's latest result ends up being the real horizon
	if len(split.Test) > 0 {
		resp.Evaluation, err = forecast.Backtest(model)
		if err != nil {
			return nil, err
		}
	}

	resp.Forecast, err = model.Forecast(req.Periods)
	if err != nil {
		return nil, err
	}

	if stats, err := analytics.Describe(req.Values); err == nil {
		resp.Statistics = &stats
	}
	resp.GeneratedAt = time.Now().UTC()
	return resp, nil
}

// methodLabel keeps client-supplied method names out of metric labels
func methodLabel(method string) string {
	if forecast.IsRegistered(method) {
		return method
	}
	return metrics.UnknownMethod
}

func (s *ForecastService) recordFailure(method string, svcErr *ServiceError, d time.Duration) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordForecast(method, metrics.StatusError, d)
	s.recorder.RecordError(svcErr.Code)
}

// publish sends the forecast event; failures are logged and never returned
func (s *ForecastService) publish(ctx context.Context, source string, resp *ForecastResponse) {
	if s.publisher == nil {
		return
	}

	event := ForecastEvent{
		ID:          resp.ID,
		Source:      source,
		Method:      resp.Method,
		Periods:     resp.Periods,
		Forecast:    resp.Forecast,
		GeneratedAt: resp.GeneratedAt,
	}
	if resp.Evaluation != nil {
		rmse := resp.Evaluation.RMSE
		event.RMSE = &rmse
	}

	err := s.sendEvent(ctx, event)
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		s.logger.WithContext(ctx).Error("Failed to publish forecast event",
			"id", resp.ID,
			"subject", s.subject,
			"error", err)
	}
	if s.recorder != nil {
		s.recorder.RecordPublish(status)
	}
}

func (s *ForecastService) sendEvent(ctx context.Context, event ForecastEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	payload, err := s.compressor.Compress(data)
	if err != nil {
		return fmt.Errorf("failed to compress event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, utils.PublishTimeout)
	defer cancel()
	return s.publisher.Publish(pubCtx, s.subject, payload)
}

// DecodeEvent reverses the encoding applied to published events
func DecodeEvent(c compression.Compressor, payload []byte) (*ForecastEvent, error) {
	if c == nil {
		return nil, errors.New("compressor is required")
	}
	data, err := c.Decompress(payload)
	if err != nil {
		return nil, err
	}
	var event ForecastEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return &event, nil
}
