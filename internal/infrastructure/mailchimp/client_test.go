// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/errors"
)

const (
	testAPIKey = "0123456789abcdef-us6"
	testList   = "a1b2c3d4"
	// md5("test@example.com")
	testHash = "55502f40dc8b7c769880b10874abc9d0"
)

// recordedRequest is what the fake provider saw
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
	User   string
	Pass   string
	Header http.Header
}

// fakeProvider answers every request with a canned status and body and
// records what it received
type fakeProvider struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	user, pass, _ := r.BasicAuth()

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
		User:   user,
		Pass:   pass,
		Header: r.Header.Clone(),
	})
	status, respBody := f.status, f.body
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(respBody))
}

func (f *fakeProvider) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "expected at least one request")
	return f.requests[len(f.requests)-1]
}

func (f *fakeProvider) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestClient(t *testing.T, status int, body string) (*Client, *fakeProvider) {
	t.Helper()

	provider := &fakeProvider{status: status, body: body}
	server := httptest.NewServer(provider)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.BaseURL = server.URL + "/3.0"
	cfg.Timeout = 5 * time.Second

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client, provider
}

func TestDataCenter(t *testing.T) {
	tests := []struct {
		key         string
		expected    string
		expectError bool
	}{
		{key: "0123456789abcdef-us6", expected: "us6"},
		{key: "a-b-c-us19", expected: "us19"},
		{key: "", expectError: true},
		{key: "nodatacenter", expectError: true},
		{key: "trailing-", expectError: true},
		{key: "bad-us6.evil.com", expectError: true},
		{key: "bad-us6/x", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			dc, err := DataCenter(tt.key)
			if tt.expectError {
				var invalid errors.InvalidInput
				assert.ErrorAs(t, err, &invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dc)
		})
	}
}

func TestNewClient_BaseURL(t *testing.T) {
	client, err := NewClient(Config{APIKey: "abc-us6"})
	require.NoError(t, err)
	assert.Equal(t, "https://us6.api.mailchimp.com/3.0", client.BaseURL())

	client, err = NewClient(Config{APIKey: "abc-us6", BaseURL: "http://localhost:9000/3.0/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/3.0", client.BaseURL())

	_, err = NewClient(Config{BaseURL: "http://localhost:9000"})
	var invalid errors.InvalidInput
	assert.ErrorAs(t, err, &invalid, "a missing key fails even with a base URL override")
}

func TestNewClient_WithHTTPClient(t *testing.T) {
	provider := &fakeProvider{body: `{"id":"a1b2c3d4"}`}
	server := httptest.NewServer(provider)
	defer server.Close()

	client, err := NewClient(Config{APIKey: testAPIKey, BaseURL: server.URL}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	_, err = client.GetList(context.Background(), testList)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.count())
}

func TestCall_Authentication(t *testing.T) {
	client, provider := newTestClient(t, http.StatusOK, `{}`)

	_, err := client.Call(context.Background(), model.MethodGet, "/ping", nil)
	require.NoError(t, err)

	req := provider.last(t)
	assert.Equal(t, "mcuser", req.User)
	assert.Equal(t, testAPIKey, req.Pass)
	assert.Equal(t, "/3.0/ping", req.Path)
	assert.NotEmpty(t, req.Header.Get("X-Request-Id"))
	assert.Equal(t, "lfx-v2-mailchimp-client", req.Header.Get("User-Agent"))
}

func TestCall_InvalidMethodNeverReachesNetwork(t *testing.T) {
	client, provider := newTestClient(t, http.StatusOK, `{}`)

	for _, method := range []model.Method{0, model.Method(99)} {
		_, err := client.Call(context.Background(), method, "/lists", nil)
		var invalid errors.InvalidInput
		assert.ErrorAs(t, err, &invalid)
	}
	assert.Equal(t, 0, provider.count())
}

func TestCall_PayloadPlacement(t *testing.T) {
	tests := []struct {
		method      model.Method
		httpMethod  string
		expectQuery bool
	}{
		{model.MethodGet, http.MethodGet, true},
		{model.MethodDelete, http.MethodDelete, true},
		{model.MethodPut, http.MethodPut, false},
		{model.MethodPost, http.MethodPost, false},
		{model.MethodPatch, http.MethodPatch, false},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			client, provider := newTestClient(t, http.StatusOK, `{}`)

			_, err := client.Call(context.Background(), tt.method, "/lists", map[string]any{"count": 10, "fields": "lists.id"})
			require.NoError(t, err)

			req := provider.last(t)
			assert.Equal(t, tt.httpMethod, req.Method)
			if tt.expectQuery {
				assert.Equal(t, "10", req.Query.Get("count"))
				assert.Equal(t, "lists.id", req.Query.Get("fields"))
				assert.Nil(t, req.Body)
			} else {
				assert.Empty(t, req.Query)
				assert.Equal(t, map[string]any{"count": float64(10), "fields": "lists.id"}, req.Body)
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			}
		})
	}
}

func TestCall_NestedQueryPayload(t *testing.T) {
	client, provider := newTestClient(t, http.StatusOK, `{}`)

	payload := map[string]any{
		"nested": map[string]any{"a": 1, "b": map[string]any{"c": "x"}},
		"ids":    []any{"x", "y"},
		"merge":  []any{map[string]any{"tag": "FNAME"}},
		"skip":   nil,
	}
	_, err := client.Call(context.Background(), model.MethodGet, "/lists", payload)
	require.NoError(t, err)

	q := provider.last(t).Query
	assert.Equal(t, "1", q.Get("nested[a]"))
	assert.Equal(t, "x", q.Get("nested[b][c]"))
	assert.Equal(t, []string{"x", "y"}, q["ids"])
	assert.Equal(t, "FNAME", q.Get("merge[0][tag]"))
	assert.NotContains(t, q, "nested")
	assert.NotContains(t, q, "skip")
}

func TestCall_SuccessBodies(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected map[string]any
	}{
		{name: "object", body: `{"id":"x","total_items":2}`, expected: map[string]any{"id": "x", "total_items": float64(2)}},
		{name: "empty", body: ``, expected: map[string]any{}},
		{name: "not json", body: `<html>ok</html>`, expected: map[string]any{}},
		{name: "array", body: `[1,2]`, expected: map[string]any{}},
		{name: "null", body: `null`, expected: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.StatusOK, tt.body)

			out, err := client.Call(context.Background(), model.MethodGet, "/lists", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestCall_ResponseCode(t *testing.T) {
	client, provider := newTestClient(t, http.StatusOK, `{}`)
	assert.Equal(t, 0, client.ResponseCode())

	_, err := client.Call(context.Background(), model.MethodGet, "/lists", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, client.ResponseCode())
	assert.False(t, client.ResponseCodeNotFound())

	provider.mu.Lock()
	provider.status, provider.body = http.StatusNotFound, `{"title":"Resource Not Found","status":404}`
	provider.mu.Unlock()

	_, err = client.Call(context.Background(), model.MethodGet, "/lists/missing", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, client.ResponseCode())
	assert.True(t, client.ResponseCodeNotFound())
}

func TestCall_ServerErrorSingleAttempt(t *testing.T) {
	client, provider := newTestClient(t, http.StatusInternalServerError, `{"title":"Internal Server Error"}`)

	_, err := client.Call(context.Background(), model.MethodGet, "/lists", nil)

	var internal errors.InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, http.StatusInternalServerError, internal.StatusCode)
	assert.Equal(t, 1, provider.count(), "the gateway makes exactly one attempt")
}

func TestCall_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{APIKey: testAPIKey, BaseURL: baseURL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.Call(context.Background(), model.MethodGet, "/lists", nil)

	var internal errors.InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, 0, internal.StatusCode)
	assert.Equal(t, 0, client.ResponseCode())
}

func TestGetList_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.StatusNotFound, `{"type":"about:blank","title":"Resource Not Found","status":404,"detail":"The requested resource could not be found."}`)

	list, err := client.GetList(context.Background(), "nonexistent")
	assert.Nil(t, list)

	var badReq errors.BadRequest
	require.ErrorAs(t, err, &badReq)
	assert.Equal(t, http.StatusNotFound, badReq.StatusCode)
	assert.True(t, badReq.NotFound())
	assert.Equal(t, "Resource Not Found", badReq.Response()["title"])
}

func TestGetLists(t *testing.T) {
	client, provider := newTestClient(t, http.StatusOK, `{"lists":[{"id":"a1","name":"Newsletter"},{"id":"b2","name":"Events"}],"total_items":2}`)

	lists, err := client.GetLists(context.Background(), model.ListsQuery{Count: 25, Offset: 50, Fields: "lists.id,lists.name"})
	require.NoError(t, err)
	require.Len(t, lists.Lists, 2)
	assert.Equal(t, "Newsletter", lists.Lists[0].Name)
	assert.Equal(t, 2, lists.TotalItems)

	req := provider.last(t)
	assert.Equal(t, "/3.0/lists", req.Path)
	assert.Equal(t, url.Values{
		"count":  {"25"},
		"offset": {"50"},
		"fields": {"lists.id,lists.name"},
	}, req.Query)
}

func TestGetMember(t *testing.T) {
	client, provider := newTestClient(t, http.StatusOK, `{"id":"55502f40dc8b7c769880b10874abc9d0","email_address":"test@example.com","status":"subscribed","tags":[{"id":1,"name":"vip"}]}`)

	record, err := client.GetMember(context.Background(), testList, testHash)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubscribed, record.Status)
	assert.Equal(t, "test@example.com", record.EmailAddress)
	require.Len(t, record.Tags, 1)

	req := provider.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/3.0/lists/a1b2c3d4/members/"+testHash, req.Path)
}

func TestAddUpdate(t *testing.T) {
	tests := []struct {
		name        string
		mergeFields map[string]any
		confirm     bool
		expected    map[string]any
	}{
		{
			name:    "confirm without merge fields",
			confirm: true,
			expected: map[string]any{
				"email_address": "test@example.com",
				"status_if_new": "pending",
				"status":        "pending",
			},
		},
		{
			name:        "no confirm with merge fields",
			mergeFields: map[string]any{"FNAME": "Jane"},
			expected: map[string]any{
				"email_address": "test@example.com",
				"status_if_new": "subscribed",
				"status":        "subscribed",
				"merge_fields":  map[string]any{"FNAME": "Jane"},
			},
		},
		{
			name:        "empty merge fields are left out",
			mergeFields: map[string]any{},
			expected: map[string]any{
				"email_address": "test@example.com",
				"status_if_new": "subscribed",
				"status":        "subscribed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, provider := newTestClient(t, http.StatusOK, `{"status":"pending"}`)

			_, err := client.AddUpdate(context.Background(), testList, " Test@Example.com ", tt.mergeFields, tt.confirm)
			require.NoError(t, err)

			req := provider.last(t)
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "/3.0/lists/a1b2c3d4/members/"+testHash, req.Path)
			assert.Equal(t, tt.expected, req.Body)
		})
	}
}

func TestAddUpdate_InvalidEmail(t *testing.T) {
	client, provider := newTestClient(t, http.StatusOK, `{}`)

	_, err := client.AddUpdate(context.Background(), testList, "not-an-email", nil, true)
	var invalid errors.InvalidInput
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, provider.count())
}

func TestAddUpdateMember(t *testing.T) {
	member, err := model.NewMember("test@example.com")
	require.NoError(t, err)
	member = member.WithConfirm(false).WithVIP(true)

	t.Run("plain", func(t *testing.T) {
		client, provider := newTestClient(t, http.StatusOK, `{"status":"subscribed"}`)

		record, err := client.AddUpdateMember(context.Background(), testList, member)
		require.NoError(t, err)
		assert.Equal(t, model.StatusSubscribed, record.Status)

		req := provider.last(t)
		assert.Equal(t, "/3.0/lists/a1b2c3d4/members/"+testHash, req.Path)
		assert.Empty(t, req.Query)
		assert.Equal(t, true, req.Body["vip"])
	})

	t.Run("skip merge validation", func(t *testing.T) {
		client, provider := newTestClient(t, http.StatusOK, `{"status":"subscribed"}`)

		_, err := client.AddUpdateMemberSkipMergeValidation(context.Background(), testList, member)
		require.NoError(t, err)

		req := provider.last(t)
		assert.Equal(t, "/3.0/lists/a1b2c3d4/members/"+testHash, req.Path)
		assert.Equal(t, "true", req.Query.Get("skip_merge_validation"))
		assert.Equal(t, "subscribed", req.Body["status"])
	})

	t.Run("throttled address", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusBadRequest, throttleBody)

		_, err := client.AddUpdateMember(context.Background(), testList, member)
		var badMail errors.BadEmailAddress
		require.True(t, stderrors.As(err, &badMail))
		assert.Equal(t, http.StatusBadRequest, badMail.StatusCode)
	})
}

func TestUnsubscribe(t *testing.T) {
	client, provider := newTestClient(t, http.StatusOK, `{"status":"unsubscribed"}`)

	record, err := client.Unsubscribe(context.Background(), testList, "TEST@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnsubscribed, record.Status)

	req := provider.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, map[string]any{
		"email_address": "test@example.com",
		"status_if_new": "unsubscribed",
		"status":        "unsubscribed",
	}, req.Body)
}

func TestArchiveAndDelete(t *testing.T) {
	client, provider := newTestClient(t, http.StatusNoContent, ``)

	require.NoError(t, client.Archive(context.Background(), testList, "test@example.com"))
	req := provider.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/3.0/lists/a1b2c3d4/members/"+testHash, req.Path)
	assert.Equal(t, "test@example.com", req.Query.Get("email_address"))

	require.NoError(t, client.Delete(context.Background(), testList, "test@example.com"))
	req = provider.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/3.0/lists/a1b2c3d4/members/"+testHash+"/actions/delete-permanent", req.Path)
	assert.Nil(t, req.Body)
}

func TestTags(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		client, provider := newTestClient(t, http.StatusOK, `{"tags":[{"id":11,"name":"vip","date_added":"2019-08-28T07:36:03+00:00"}],"total_items":1}`)

		tags, err := client.GetTags(context.Background(), testList, "test@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"vip"}, tags.Names())
		assert.Equal(t, int64(11), tags.Tags[0].ID)

		req := provider.last(t)
		assert.Equal(t, "/3.0/lists/a1b2c3d4/members/"+testHash+"/tags", req.Path)
	})

	t.Run("get empty", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, `{"total_items":0}`)

		tags, err := client.GetTags(context.Background(), testList, "test@example.com")
		require.NoError(t, err)
		assert.NotNil(t, tags.Tags)
		assert.Empty(t, tags.Tags)
	})

	t.Run("add and remove", func(t *testing.T) {
		client, provider := newTestClient(t, http.StatusNoContent, ``)

		require.NoError(t, client.AddTags(context.Background(), testList, "test@example.com", []string{"a", "b"}))
		req := provider.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, map[string]any{"tags": []any{
			map[string]any{"name": "a", "status": "active"},
			map[string]any{"name": "b", "status": "active"},
		}}, req.Body)

		require.NoError(t, client.RemoveTags(context.Background(), testList, "test@example.com", []string{"a"}))
		req = provider.last(t)
		assert.Equal(t, map[string]any{"tags": []any{
			map[string]any{"name": "a", "status": "inactive"},
		}}, req.Body)
	})
}
