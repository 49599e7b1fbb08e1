package leaderboardprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/grindheim/ladderlight/internal/config"
	"github.com/grindheim/ladderlight/internal/constants"
	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/grindheim/ladderlight/internal/logging"
	"github.com/grindheim/ladderlight/internal/ratelimiting"
	"github.com/grindheim/ladderlight/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const fetchLeaderboardMaxOperationTime = 10 * time.Second

type RequestLimiter interface {
	Limit(ctx context.Context, maxOperationTime time.Duration, operation func()) bool
}

type leaderboardMetricsCollection struct {
	requestCount metric.Int64Counter
}

func setupLeaderboardMetrics(meter metric.Meter) (leaderboardMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("leaderboardprovider/ladder/request_count")
	if err != nil {
		return leaderboardMetricsCollection{}, fmt.Errorf("failed to create request count metric: %w", err)
	}

	return leaderboardMetricsCollection{
		requestCount: requestCount,
	}, nil
}

type ladderLeaderboardImpl struct {
	httpClient HttpClient
	baseURL    string
	limiter    RequestLimiter

	metrics leaderboardMetricsCollection
	tracer  trace.Tracer
}

func NewLadderLeaderboard(httpClient HttpClient, baseURL string, nowFunc func() time.Time, afterFunc func(time.Duration) <-chan time.Time) (Leaderboard, error) {
	const name = "ladderlight/leaderboardprovider/ladder"

	meter := otel.Meter(name)
	tracer := otel.Tracer(name)

	metrics, err := setupLeaderboardMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	limiter := ratelimiting.NewWindowLimitRequestLimiter(10, 1*time.Second, nowFunc, afterFunc)

	return &ladderLeaderboardImpl{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    limiter,

		metrics: metrics,
		tracer:  tracer,
	}, nil
}

func (lb *ladderLeaderboardImpl) GetEntryByProfileID(ctx context.Context, leaderboardID int, profileID domain.ProfileID) (*domain.LadderEntry, error) {
	query := url.Values{}
	query.Set("profile_id", strconv.FormatInt(int64(profileID), 10))
	return lb.getEntry(ctx, leaderboardID, query)
}

func (lb *ladderLeaderboardImpl) GetEntryByName(ctx context.Context, leaderboardID int, name string) (*domain.LadderEntry, error) {
	query := url.Values{}
	query.Set("search", name)
	return lb.getEntry(ctx, leaderboardID, query)
}

func (lb *ladderLeaderboardImpl) GetEntryByRank(ctx context.Context, leaderboardID int, rank int) (*domain.LadderEntry, error) {
	query := url.Values{}
	query.Set("start", strconv.Itoa(rank))
	return lb.getEntry(ctx, leaderboardID, query)
}

func (lb *ladderLeaderboardImpl) getEntry(ctx context.Context, leaderboardID int, query url.Values) (*domain.LadderEntry, error) {
	ctx, span := lb.tracer.Start(ctx, "LadderLeaderboard.getEntry")
	defer span.End()

	logger := logging.FromContext(ctx)

	query.Set("leaderboard_id", strconv.Itoa(leaderboardID))
	query.Set("count", "1")
	requestURL := fmt.Sprintf("%s/api/leaderboard?%s", lb.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	req.Header.Set("User-Agent", constants.USER_AGENT)

	var resp *http.Response
	var data []byte
	var requestErr error

	start := time.Now()
	ran := lb.limiter.Limit(ctx, fetchLeaderboardMaxOperationTime, func() {
		ctx, span := lb.tracer.Start(ctx, "LadderLeaderboard.httpget")
		defer span.End()

		resp, requestErr = lb.httpClient.Do(req)
		if requestErr != nil {
			requestErr = fmt.Errorf("failed to send request: %w", requestErr)
			reporting.Report(ctx, requestErr)
			return
		}

		defer resp.Body.Close()
		data, requestErr = io.ReadAll(resp.Body)
		if requestErr != nil {
			requestErr = fmt.Errorf("failed to read response body: %w", requestErr)
			reporting.Report(ctx, requestErr)
		}
	})
	if !ran {
		logger.WarnContext(ctx, "Did not fetch leaderboard entry due to rate limiting", "ctx_error", ctx.Err())
		return nil, fmt.Errorf("%w: too many requests to the ladder API", domain.ErrTemporarilyUnavailable)
	}
	if requestErr != nil {
		return nil, requestErr
	}

	logger.InfoContext(ctx, "leaderboard request completed", "status", resp.StatusCode, "duration", time.Since(start).String())

	entry, err := LeaderboardResponseToEntry(ctx, data, resp.StatusCode)
	if err != nil {
		// NOTE: LeaderboardResponseToEntry handles its own error reporting
		return nil, err
	}

	lb.metrics.requestCount.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("leaderboardId", leaderboardID),
	))

	return entry, nil
}

type mockedLeaderboard struct{}

func (lb *mockedLeaderboard) GetEntryByProfileID(ctx context.Context, leaderboardID int, profileID domain.ProfileID) (*domain.LadderEntry, error) {
	return &domain.LadderEntry{ProfileID: profileID, Name: "dev", Rank: 1, Rating: 2500}, nil
}

func (lb *mockedLeaderboard) GetEntryByName(ctx context.Context, leaderboardID int, name string) (*domain.LadderEntry, error) {
	return &domain.LadderEntry{ProfileID: 1, Name: name, Rank: 1, Rating: 2500}, nil
}

func (lb *mockedLeaderboard) GetEntryByRank(ctx context.Context, leaderboardID int, rank int) (*domain.LadderEntry, error) {
	return &domain.LadderEntry{ProfileID: 1, Name: "dev", Rank: rank, Rating: 2500}, nil
}

func NewLadderLeaderboardOrMock(conf config.Config, httpClient HttpClient) (Leaderboard, error) {
	if conf.LadderAPIURL() != "" {
		return NewLadderLeaderboard(httpClient, conf.LadderAPIURL(), time.Now, time.After)
	}
	if conf.IsDevelopment() {
		return &mockedLeaderboard{}, nil
	}
	return nil, fmt.Errorf("Missing ladder API URL in non-development environment")
}
