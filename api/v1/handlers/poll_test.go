package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odditor/internal/models"
	"odditor/internal/poll"
	"odditor/pkg/server"
)

func newPollApp(t *testing.T) (*fiber.App, *poll.Store) {
	t.Helper()
	app := server.NewFiber()
	store := poll.NewStore()
	RegisterPoll(app.Group("/api/v1"), store)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestCreatePoll(t *testing.T) {
	app, store := newPollApp(t)

	resp := postJSON(t, app, "/api/v1/create", `{"name":"  Alex  "}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.CreateResponse
	decodeBody(t, resp, &body)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, body.Id)
	assert.Equal(t, "Alex", body.Name)
	assert.Equal(t, 1, store.Count())
}

func TestCreatePollBadRequest(t *testing.T) {
	app, store := newPollApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"空名字", `{"name":""}`},
		{"纯空白", `{"name":"   "}`},
		{"坏 JSON", `{"name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/v1/create", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			decodeBody(t, resp, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
	assert.Zero(t, store.Count())
}

func TestGetPoll(t *testing.T) {
	app, store := newPollApp(t)
	created, err := store.Create("Alex")
	require.NoError(t, err)

	// 小写短码同样命中
	req := httptest.NewRequest(http.MethodGet, "/api/v1/poll/"+strings.ToLower(created.Id), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snap models.Poll
	decodeBody(t, resp, &snap)
	assert.Equal(t, created.Id, snap.Id)
	assert.Equal(t, "Alex", snap.OwnerName)
	require.Len(t, snap.Questions, len(created.Questions))
	for _, q := range snap.Questions {
		assert.Zero(t, q.Votes.Normal)
		assert.Zero(t, q.Votes.Odd)
	}
}

func TestGetPollNotFound(t *testing.T) {
	app, _ := newPollApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/poll/ZZZZZZ", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Poll not found", body["error"])
}
