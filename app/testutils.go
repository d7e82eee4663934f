package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bloglist/internal/blogservice"
	"bloglist/internal/common"
	"bloglist/internal/mailservice"
	"bloglist/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	if len(responseBody) > 0 {
		err = json.Unmarshal(responseBody, &envelope)
		if err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, res.Header, envelope
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	rabbitURI := common.TestRabbitMQ(t)
	rabbitmq, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)

	err = common.SetupUserExchange(rabbitmq)
	assert.NoError(t, err)

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	cfg := &Config{
		Port:             ":4000",
		Environment:      "test",
		Version:          "1.0.0",
		RateLimitEnabled: false,
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, rabbitmq, cache),
		blogService: blogservice.NewBlogService(db, cache),
		mailService: mailservice.NewMailService(rabbitmq, "localhost", "test", "test", "test@example.com", 1025, logger),
		broker:      rabbitmq,
	}

	return app, db
}

// registerActivatedUser creates a user directly against the service layer,
// flips activation in the database, and logs in. Returns the plaintext
// access token.
func registerActivatedUser(t *testing.T, app *application, db *sql.DB, username string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := fmt.Sprintf("%s@example.com", username)

	_, err := app.userService.CreateUser(ctx, username, "Test User", email, "Test_1234!")
	assert.NoError(t, err)

	_, err = db.Exec("UPDATE users SET activated = true WHERE username = $1", username)
	assert.NoError(t, err)

	token, err := app.userService.LoginUser(ctx, username, "Test_1234!")
	assert.NoError(t, err)

	return token.AccessTokenPlain
}

func (ts *testServer) post(t *testing.T, path string, token *string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) put(t *testing.T, path string, token *string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}

func (ts *testServer) do(t *testing.T, method, path string, token *string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}
