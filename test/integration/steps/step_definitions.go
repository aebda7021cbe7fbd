package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/integration/persistence/model"
)

// registerSetupSteps registers the Given steps that prepare users and data.
// Seeding goes through the public API so scenarios exercise the same paths
// the frontend does; only the notification toggle writes to the database
// directly, since no endpoint exposes it.
func registerSetupSteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Given(`^a registered user with email "([^"]*)" and password "([^"]*)"$`, aRegisteredUserWithEmailAndPassword)
	ctx.Given(`^I am logged in with email "([^"]*)" and password "([^"]*)"$`, iAmLoggedInWithEmailAndPassword)
	ctx.Given(`^my pay schedule is "([^"]*)" with last pay date "([^"]*)"$`, myPayScheduleIs)
	ctx.Given(`^I have a budget category "([^"]*)" with monthly allocation "([^"]*)"$`, iHaveABudgetCategory)
	ctx.Given(`^I have a transaction "([^"]*)" of "([^"]*)" on "([^"]*)" in category "([^"]*)"$`, iHaveACategorizedTransaction)
	ctx.Given(`^I have an uncategorized transaction "([^"]*)" of "([^"]*)" on "([^"]*)"$`, iHaveAnUncategorizedTransaction)
	ctx.Given(`^email notifications are disabled for "([^"]*)"$`, emailNotificationsAreDisabledFor)
	ctx.Given(`^the header is empty$`, theHeaderIsEmpty)
	ctx.Given(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

// registerRequestSteps registers HTTP request steps.
func registerRequestSteps(ctx *godog.ScenarioContext) {
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

// registerAssertionSteps registers response and database validation steps.
func registerAssertionSteps(ctx *godog.ScenarioContext) {
	ctx.Then(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, theDbShouldContainObjectsInWithTheValues)
}

// Setup steps

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return errors.New("test server is not running")
	}
	return nil
}

func aRegisteredUserWithEmailAndPassword(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	body := fmt.Sprintf(`{"email": %q, "name": "Test User", "password": %q, "terms_accepted": true}`, email, password)
	if err := tc.doRequest(http.MethodPost, "/api/v1/auth/register", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to register user: status %d, body %s", tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func iAmLoggedInWithEmailAndPassword(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)
	if err := tc.doRequest(http.MethodPost, "/api/v1/auth/login", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to log in: status %d, body %s", tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func myPayScheduleIs(ctx context.Context, frequency, lastPayDate string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	body := fmt.Sprintf(`{"frequency": %q, "last_pay_date": %q}`, frequency, lastPayDate)
	if err := tc.doRequest(http.MethodPut, "/api/v1/pay-schedule", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK && tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to set pay schedule: status %d, body %s", tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func iHaveABudgetCategory(ctx context.Context, name, allocation string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	body := fmt.Sprintf(`{"name": %q, "allocated_amount": %s}`, name, allocation)
	if err := tc.doRequest(http.MethodPost, "/api/v1/categories", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to create category %q: status %d, body %s", name, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func iHaveACategorizedTransaction(ctx context.Context, name, amount, date, categoryName string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	categoryID, ok := tc.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q has not been created in this scenario", categoryName)
	}

	body := fmt.Sprintf(`{"date": %q, "name": %q, "amount": %s, "category_id": %q}`, date, name, amount, categoryID)
	if err := tc.doRequest(http.MethodPost, "/api/v1/transactions", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to create transaction %q: status %d, body %s", name, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func iHaveAnUncategorizedTransaction(ctx context.Context, name, amount, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	body := fmt.Sprintf(`{"date": %q, "name": %q, "amount": %s}`, date, name, amount)
	if err := tc.doRequest(http.MethodPost, "/api/v1/transactions", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to create transaction %q: status %d, body %s", name, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func emailNotificationsAreDisabledFor(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	result := tc.db.DbConn.Model(&model.UserModel{}).
		Where("email = ?", email).
		Update("email_notifications", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no user found with email %q", email)
	}
	return nil
}

func theHeaderIsEmpty(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	tc.requestHeaders = make(map[string]string)
	tc.accessToken = ""
	return nil
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	tc.requestHeaders[header] = value
	return nil
}

// Request steps

func iSendARequestTo(ctx context.Context, method, path string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	return tc.doRequest(method, path, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(body.Content)
	}
	return tc.doRequest(method, path, payload)
}

// Response assertion steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	value, err := tc.lookupResponseField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	_, err := tc.lookupResponseField(field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	value, err := tc.lookupResponseField(field)
	if err != nil {
		return err
	}

	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not an array: %v", field, value)
	}
	if len(arr) != count {
		return fmt.Errorf("field %q expected %d items, got %d", field, count, len(arr))
	}
	return nil
}

// lookupResponseField resolves a dot-separated field path in the last JSON
// response. Numeric path segments index into arrays.
func (tc *TestContext) lookupResponseField(field string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value := getFieldValue(data, field)
	if value == nil {
		return nil, fmt.Errorf("field %q not found in response: %s", field, tc.responseBody)
	}
	return value, nil
}

func getFieldValue(object any, dotSeparatedField string) any {
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
		} else {
			m, ok := field.(map[string]any)
			if !ok {
				return nil
			}
			field = m[currentField]
		}
	}

	return field
}

// Database assertion steps

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	count, err := tc.countRows(table, nil)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q, got %d", quantity, table, count)
	}
	return nil
}

func theDbShouldContainObjectsInWithTheValues(ctx context.Context, quantity int, table string, content *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return fmt.Errorf("failed to parse criteria: %w", err)
	}

	count, err := tc.countRows(table, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// countRows counts the rows of a registered table matching the criteria,
// building the result slice through reflection on the registered model.
func (tc *TestContext) countRows(table string, criteria map[string]any) (int, error) {
	entity, ok := tc.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := tc.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}

	return entitySlicePtr.Elem().Len(), nil
}
