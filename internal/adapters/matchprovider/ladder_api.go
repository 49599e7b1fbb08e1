package matchprovider

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

const fetchGamesMaxOperationTime = 10 * time.Second

type RequestLimiter interface {
	Limit(ctx context.Context, maxOperationTime time.Duration, operation func()) bool
}

type ladderAPIMetricsCollection struct {
	requestCount metric.Int64Counter
}

func setupLadderAPIMetrics(meter metric.Meter) (ladderAPIMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("matchprovider/ladder/request_count")
	if err != nil {
		return ladderAPIMetricsCollection{}, fmt.Errorf("failed to create request count metric: %w", err)
	}

	return ladderAPIMetricsCollection{
		requestCount: requestCount,
	}, nil
}

type ladderAPIImpl struct {
	httpClient HttpClient
	baseURL    string
	limiter    RequestLimiter

	metrics ladderAPIMetricsCollection
	tracer  trace.Tracer
}

func NewLadderAPI(httpClient HttpClient, baseURL string, nowFunc func() time.Time, afterFunc func(time.Duration) <-chan time.Time) (LadderAPI, error) {
	const name = "ladderlight/matchprovider/ladder"

	meter := otel.Meter(name)
	tracer := otel.Tracer(name)

	metrics, err := setupLadderAPIMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	// The upstream service allows a small request budget per client
	limiter := ratelimiting.NewWindowLimitRequestLimiter(10, 1*time.Second, nowFunc, afterFunc)

	return &ladderAPIImpl{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    limiter,

		metrics: metrics,
		tracer:  tracer,
	}, nil
}

func (api *ladderAPIImpl) FetchGamesPage(ctx context.Context, profileID domain.ProfileID, opponentID *domain.ProfileID, since *time.Time, page int) (*domain.GamesPage, error) {
	ctx, span := api.tracer.Start(ctx, "LadderAPI.FetchGamesPage")
	defer span.End()

	logger := logging.FromContext(ctx)

	query := url.Values{}
	query.Set("profile_id", strconv.FormatInt(int64(profileID), 10))
	query.Set("page", strconv.Itoa(page))
	if opponentID != nil {
		query.Set("opponent_profile_id", strconv.FormatInt(int64(*opponentID), 10))
	}
	if since != nil {
		query.Set("since", strconv.FormatInt(since.Unix(), 10))
	}
	requestURL := fmt.Sprintf("%s/api/player/matches?%s", api.baseURL, query.Encode())

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
	ran := api.limiter.Limit(ctx, fetchGamesMaxOperationTime, func() {
		ctx, span := api.tracer.Start(ctx, "LadderAPI.httpget")
		defer span.End()

		resp, requestErr = api.httpClient.Do(req)
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
		logger.WarnContext(ctx, "Did not fetch games page due to rate limiting", "ctx_error", ctx.Err())
		return nil, fmt.Errorf("%w: too many requests to the ladder API", domain.ErrTemporarilyUnavailable)
	}
	if requestErr != nil {
		return nil, requestErr
	}

	logger.InfoContext(ctx, "ladder request completed", "status", resp.StatusCode, "duration", time.Since(start).String())

	page_, err := MatchesResponseToGamesPage(ctx, data, resp.StatusCode)
	if err != nil {
		// NOTE: MatchesResponseToGamesPage handles its own error reporting
		return nil, fmt.Errorf("failed to parse games page: %w", err)
	}

	api.metrics.requestCount.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("games", len(page_.Games)),
	))

	return page_, nil
}

type mockedLadderAPI struct{}

func (api *mockedLadderAPI) FetchGamesPage(ctx context.Context, profileID domain.ProfileID, opponentID *domain.ProfileID, since *time.Time, page int) (*domain.GamesPage, error) {
	return &domain.GamesPage{Games: []domain.GameRecord{}, Offset: 0, TotalCount: 0}, nil
}

func NewLadderAPIOrMock(conf config.Config, httpClient HttpClient) (LadderAPI, error) {
	if conf.LadderAPIURL() != "" {
		return NewLadderAPI(httpClient, conf.LadderAPIURL(), time.Now, time.After)
	}
	if conf.IsDevelopment() {
		return &mockedLadderAPI{}, nil
	}
	return nil, fmt.Errorf("Missing ladder API URL in non-development environment")
}
