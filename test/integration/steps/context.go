// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/paytrack/backend/config"
	"github.com/paytrack/backend/internal/infra/dependency"
	"github.com/paytrack/backend/internal/integration/persistence/model"
	"github.com/paytrack/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	client       *http.Client
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken  string
	refreshToken string

	// Captured identifiers for path and body placeholders
	lastCategoryID    string
	lastTransactionID string
	categoryIDs       map[string]string

	// Backing stores
	db    *mock.Db
	redis *redis.Client
	cfg   *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerSetupSteps(ctx)
	registerRequestSteps(ctx)
	registerAssertionSteps(ctx)
}

// newTestContext boots the full application against the shared in-memory
// database and Redis, wiped clean, and exposes it through a test HTTP server.
func newTestContext() (*TestContext, error) {
	cfg := config.Load()
	// Queued digest emails must stay visible in the email_queue table, and
	// the advice endpoint must answer with its not-configured error.
	cfg.Email.WorkerEnabled = false
	cfg.AI.GeminiAPIKey = ""

	dbMock := mock.NewDb(map[string]any{
		"users":            &model.UserModel{},
		"refresh_tokens":   &model.RefreshTokenModel{},
		"categories":       &model.CategoryModel{},
		"transactions":     &model.TransactionModel{},
		"pay_schedules":    &model.PayScheduleModel{},
		"report_snapshots": &model.ReportSnapshotModel{},
		"email_queue":      &model.EmailQueueModel{},
	})
	if err := dbMock.ClearDB(); err != nil {
		return nil, fmt.Errorf("failed to clear database: %w", err)
	}

	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return nil, fmt.Errorf("failed to clear redis: %w", err)
	}

	injector, err := dependency.NewInjector(cfg, dbMock.DbConn, redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to wire dependencies: %w", err)
	}

	tc := &TestContext{
		client:         &http.Client{Timeout: 10 * time.Second},
		requestHeaders: make(map[string]string),
		categoryIDs:    make(map[string]string),
		db:             dbMock,
		redis:          redisClient,
		cfg:            cfg,
	}
	tc.server = httptest.NewServer(injector.Router.Setup("test"))

	return tc, nil
}

// doRequest sends an HTTP request to the test server and captures the
// response. Known identifiers are substituted into the path and body first.
func (tc *TestContext) doRequest(method, path string, body []byte) error {
	path = tc.replacePlaceholders(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader([]byte(tc.replacePlaceholders(string(body))))
	}

	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	tc.captureIdentifiers()

	return nil
}

// replacePlaceholders substitutes captured identifiers into feature text.
func (tc *TestContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", tc.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", tc.refreshToken)
	content = strings.ReplaceAll(content, "{{category_id}}", tc.lastCategoryID)
	content = strings.ReplaceAll(content, "{{transaction_id}}", tc.lastTransactionID)
	return content
}

// captureIdentifiers pulls tokens and resource IDs out of the last response
// so later steps can reference them through placeholders.
func (tc *TestContext) captureIdentifiers() {
	var body map[string]any
	if err := json.Unmarshal(tc.responseBody, &body); err != nil {
		return
	}

	if token, ok := body["access_token"].(string); ok && token != "" {
		tc.accessToken = token
	}
	if token, ok := body["refresh_token"].(string); ok && token != "" {
		tc.refreshToken = token
	}

	id, ok := body["id"].(string)
	if !ok {
		return
	}

	// Category responses carry an allocation, transaction responses a date.
	if _, isCategory := body["allocated_amount"]; isCategory {
		tc.lastCategoryID = id
		if name, ok := body["name"].(string); ok {
			tc.categoryIDs[name] = id
		}
		return
	}
	if _, isTransaction := body["date"]; isTransaction {
		tc.lastTransactionID = id
	}
}
