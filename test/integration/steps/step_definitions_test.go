//go:build integration

package steps

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/config"
	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/infra/db"
	"github.com/ecooy/backend/internal/infra/dependency"
	"github.com/ecooy/backend/internal/integration/persistence/model"
	"github.com/ecooy/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "ecooy-api",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	headers       map[string]string
	client        *http.Client
	response      *response
	accessToken   string
	refreshToken  string
	resetToken    string
	lastPath      string
	transactionID string
	goalID        string
	notifyID      string
}

type response struct {
	status int
	body   any
}

// suite holds the process-wide server and its fakes. Scenarios share it and
// reset the stores in before().
type suite struct {
	db        *mock.Db
	timeMock  *mock.Time
	emailAPI  *mock.ApiMock
	injector  *dependency.Injector
	server    *httptest.Server
	verifier  *fakeIdentityVerifier
	startErr  error
	startOnce sync.Once
}

var shared = &suite{}

// fakeIdentityVerifier accepts tokens shaped "valid:<subject>:<email>:<name>".
type fakeIdentityVerifier struct{}

func (fakeIdentityVerifier) IsAvailable() bool { return true }

func (fakeIdentityVerifier) Verify(_ context.Context, idToken string) (*adapter.FederatedIdentity, error) {
	parts := strings.SplitN(idToken, ":", 4)
	if len(parts) != 4 || parts[0] != "valid" {
		return nil, errors.New("token signature mismatch")
	}
	return &adapter.FederatedIdentity{
		Subject:       parts[1],
		Email:         parts[2],
		EmailVerified: true,
		Name:          parts[3],
	}, nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a registered user "([^"]*)" with email "([^"]*)" and password "([^"]*)"$`, test.aRegisteredUser)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the latest password reset token for "([^"]*)" is known$`, test.theLatestPasswordResetTokenIsKnown)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I open the stream "([^"]*)"$`, test.iOpenTheStream)

	// Background job steps
	ctx.When(`^the salary reminder runs$`, test.theSalaryReminderRuns)
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Email provider assertion steps
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the email provider request (\d+) field "([^"]*)" should contain "([^"]*)"$`, test.theEmailProviderRequestFieldShouldContain)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.lastPath = ""
	t.transactionID = ""
	t.goalID = ""
	t.notifyID = ""

	if shared.db == nil {
		return nil
	}
	shared.timeMock.Reset()
	shared.emailAPI.Reset()
	shared.injector.LoginRateLimiter.Reset()
	if err := mock.ClearRedis(shared.injector.Redis); err != nil {
		return err
	}
	return shared.db.ClearDB()
}

func (s *suite) start() error {
	s.startOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")

		s.db = mock.NewDb()
		s.timeMock = mock.NewTime()
		s.emailAPI = mock.NewApiServer()
		s.emailAPI.Start()
		s.verifier = &fakeIdentityVerifier{}

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Email.ResendAPIKey = "re_test_key"
		cfg.Email.ResendBaseURL = s.emailAPI.GetUrl()
		cfg.Email.WorkerEnabled = false
		cfg.Gemini.APIKey = ""
		cfg.AMQP.URL = ""
		cfg.Reminder.Enabled = false
		cfg.Realtime.HeartbeatInterval = time.Second

		s.injector, s.startErr = dependency.New(cfg, db.NewDatabase(s.db.DbConn), mock.NewRedis(), dependency.Options{
			Now:              s.timeMock.Now,
			IdentityVerifier: s.verifier,
		})
		if s.startErr != nil {
			return
		}
		s.server = httptest.NewServer(s.injector.Engine)
	})
	return s.startErr
}

func (t *testContext) theAPIServerIsRunning() error {
	if err := shared.start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	if err := t.before(); err != nil {
		return err
	}

	if err := t.executeRequest(http.MethodGet, "/health", nil); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("health check returned %d: %v", t.response.status, t.response.body)
	}
	t.response = nil
	return nil
}

func (t *testContext) aRegisteredUser(name, email, password string) error {
	payload, _ := json.Marshal(map[string]string{
		"name":             name,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("register %s returned %d: %v", email, t.response.status, t.response.body)
	}
	t.response = nil
	return nil
}

func (t *testContext) iAmLoggedInAs(email, password string) error {
	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login %s returned %d: %v", email, t.response.status, t.response.body)
	}
	if t.accessToken == "" {
		return errors.New("login response carried no access token")
	}
	t.response = nil
	return nil
}

func (t *testContext) theLatestPasswordResetTokenIsKnown(email string) error {
	var token model.PasswordResetTokenModel
	err := shared.db.DbConn.
		Where("email = ? AND used = ?", email, false).
		Order("created_at DESC").
		First(&token).Error
	if err != nil {
		return fmt.Errorf("no reset token for %s: %w", email, err)
	}
	t.resetToken = token.Token
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		at, err = time.Parse(time.DateOnly, value)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", value, err)
		}
		at = at.Add(9 * time.Hour)
	}
	shared.timeMock.SetCurrentTime(at)
	return nil
}

func (t *testContext) theSalaryReminderRuns() error {
	_, err := shared.injector.SalaryReminder.Execute(context.Background())
	return err
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	if shared.injector.EmailWorker == nil {
		return errors.New("email worker is not configured")
	}
	shared.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	payload := []byte(t.replacePlaceholders(body.Content))
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.transactionID)
	content = strings.ReplaceAll(content, "{{goal_id}}", t.goalID)
	content = strings.ReplaceAll(content, "{{notification_id}}", t.notifyID)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, shared.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.lastPath = path
	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIdentifiers(method, path, responseBody)
	return nil
}

// captureIdentifiers remembers tokens and created ids for later placeholders.
func (t *testContext) captureIdentifiers(method, path string, body map[string]any) {
	if token, ok := body["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := body["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}

	if method != http.MethodPost {
		return
	}
	id, _ := body["id"].(string)
	switch {
	case path == "/api/v1/transactions":
		t.transactionID = id
	case path == "/api/v1/goals":
		t.goalID = id
	case path == "/api/v1/notifications/tips":
		t.notifyID = id
	}
}

// iOpenTheStream connects to an SSE endpoint and keeps the first snapshot as
// the response body.
func (t *testContext) iOpenTheStream(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shared.server.URL+t.replacePlaceholders(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	t.response = &response{status: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var errorBody map[string]any
		if json.Unmarshal(bodyBytes, &errorBody) == nil {
			t.response.body = errorBody
		} else {
			t.response.body = string(bodyBytes)
		}
		return nil
	}

	scanner := bufio.NewScanner(resp.Body)
	event := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:") && event == "snapshot":
			var snapshot any
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
				return fmt.Errorf("invalid snapshot %q: %w", data, err)
			}
			t.response.body = snapshot
			return nil
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.New("stream closed before the first snapshot")
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		if expectedValue == "null" {
			return nil
		}
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := shared.db.Count(table, nil)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in %s, got %d", quantity, table, count)
	}
	return nil
}

// theDbShouldContainObjectsInWithTheValues filters by the column values in
// the JSON doc string.
func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var where map[string]any
	if err := json.Unmarshal([]byte(content.Content), &where); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	count, err := shared.db.Count(table, where)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in %s matching %v, got %d", quantity, table, where, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(quantity int) error {
	requests := shared.emailAPI.GetRequests(http.MethodPost, "/emails")
	if len(requests) != quantity {
		return fmt.Errorf("expected %d emails sent, got %d", quantity, len(requests))
	}
	return nil
}

func (t *testContext) theEmailProviderRequestFieldShouldContain(index int, field, expected string) error {
	requests := shared.emailAPI.GetRequests(http.MethodPost, "/emails")
	if index < 1 || index > len(requests) {
		return fmt.Errorf("email request %d not found, %d received", index, len(requests))
	}

	value := fmt.Sprintf("%v", getFieldValue(requests[index-1], field))
	if !strings.Contains(value, expected) {
		return fmt.Errorf("email field '%s' expected to contain '%s', got '%s'", field, expected, value)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
