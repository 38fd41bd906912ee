package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"daily-log/internal/config"
	"daily-log/internal/domain"
	"daily-log/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(apiURL, rawURL string) config.GitHubConfig {
	return config.GitHubConfig{
		Owner:          "someone",
		Repo:           "habit-data",
		FilePath:       "daily_log.csv",
		Branch:         "main",
		Token:          "test-token",
		APIBaseURL:     apiURL,
		RawBaseURL:     rawURL,
		RequestTimeout: 2 * time.Second,
		CommitMessage:  "Update daily log",
	}
}

func TestClient_FetchRevision(t *testing.T) {
	t.Run("should return the sha on 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/repos/someone/habit-data/contents/daily_log.csv", r.URL.Path)
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"sha":"abc123","path":"daily_log.csv"}`))
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		sha, err := client.FetchRevision(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "abc123", sha)
	})

	t.Run("should report no revision on 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		sha, err := client.FetchRevision(context.Background())

		assert.Empty(t, sha)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRevision))
	})

	t.Run("should report no revision when the store is unreachable", func(t *testing.T) {
		client := New(testConfig("http://127.0.0.1:1", "http://127.0.0.1:1"))

		sha, err := client.FetchRevision(context.Background())

		assert.Empty(t, sha)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRevision))
	})

	t.Run("should report no revision for a body without a sha", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		_, err := client.FetchRevision(context.Background())

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRevision))
	})
}

func TestClient_ReadTable(t *testing.T) {
	header := strings.Join(domain.Columns(), ",")

	t.Run("should parse the remote csv", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/someone/habit-data/main/daily_log.csv", r.URL.Path)
			// The distribution endpoint serves public content unauthenticated.
			io.WriteString(w, header+"\n"+
				"2025-01-06,Monday,Yes,3.5,2,8,No,Yes,No,No,Yes,No,No,7.5,ok,plan\n")
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		table, err := client.ReadTable(context.Background())

		require.NoError(t, err)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, "Monday", table.Rows()[0].Weekday)
	})

	t.Run("should return an empty table on 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		table, err := client.ReadTable(context.Background())

		require.NotNil(t, table)
		assert.True(t, table.IsEmpty())
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStore))
	})

	t.Run("should return an empty table when unreachable", func(t *testing.T) {
		client := New(testConfig("http://127.0.0.1:1", "http://127.0.0.1:1"))

		table, err := client.ReadTable(context.Background())

		require.NotNil(t, table)
		assert.True(t, table.IsEmpty())
		assert.Error(t, err)
	})

	t.Run("should return an empty table for malformed content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "\"unterminated")
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		table, err := client.ReadTable(context.Background())

		require.NotNil(t, table)
		assert.True(t, table.IsEmpty())
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStore))
	})
}

func TestClient_WriteTable(t *testing.T) {
	makeTable := func() *domain.Table {
		table := domain.NewTable()
		table.Append(testEntry(t, "2025-01-06"))
		return table
	}

	t.Run("should submit base64 csv with revision and branch", func(t *testing.T) {
		var captured updateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/repos/someone/habit-data/contents/daily_log.csv", r.URL.Path)
			assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &captured))
			w.Write([]byte(`{"content":{"sha":"def456"}}`))
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		err := client.WriteTable(context.Background(), makeTable(), "abc123", "Add entry for 2025-01-06")

		require.NoError(t, err)
		assert.Equal(t, "abc123", captured.SHA)
		assert.Equal(t, "main", captured.Branch)
		assert.Equal(t, "Add entry for 2025-01-06", captured.Message)

		decoded, err := base64.StdEncoding.DecodeString(captured.Content)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(decoded), "Date,Weekday"))
	})

	t.Run("should accept 201 created", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		assert.NoError(t, client.WriteTable(context.Background(), makeTable(), "abc123", "msg"))
	})

	t.Run("should surface a stale revision rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"daily_log.csv does not match abc123"}`))
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		err := client.WriteTable(context.Background(), makeTable(), "abc123", "msg")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStore))
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "WRITE_REJECTED", appErr.Code)
		status, _ := appErr.GetContext("status")
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("should refuse to write without a revision", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request must reach the store without a revision")
		}))
		defer server.Close()

		client := New(testConfig(server.URL, server.URL))
		err := client.WriteTable(context.Background(), makeTable(), "", "msg")

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRevision))
	})
}

func TestClient_WriteThenReadRoundTrip(t *testing.T) {
	// One in-memory "store": a PUT overwrites the file, a GET serves it.
	var stored []byte
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /repos/someone/habit-data/contents/daily_log.csv", func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		stored, _ = base64.StdEncoding.DecodeString(req.Content)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /someone/habit-data/main/daily_log.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write(stored)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(testConfig(server.URL, server.URL))

	table := domain.NewTable()
	table.Append(testEntry(t, "2025-01-06"))
	table.Append(testEntry(t, "2025-01-06"))

	require.NoError(t, client.WriteTable(context.Background(), table, "abc123", "msg"))

	got, err := client.ReadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, table.Rows(), got.Rows())
}
