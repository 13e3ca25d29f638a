package apify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartHashtagScrape(t *testing.T) {
	var gotPath, gotToken string
	var gotInput map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data": {"id": "run-1", "status": "RUNNING", "defaultDatasetId": "ds-1"}}`)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL)
	run, err := client.StartHashtagScrape(context.Background(), []string{"fitness"}, 50)

	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "ds-1", run.DefaultDatasetID)
	assert.Equal(t, "/acts/"+ActorHashtagScraper+"/runs", gotPath)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, []interface{}{"fitness"}, gotInput["hashtags"])
	assert.Equal(t, float64(50), gotInput["resultsLimit"])
}

func TestStartRunErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("wrong", server.URL)
	_, err := client.StartProfileScrape(context.Background(), []string{"someone"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestWaitForRunSucceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/actor-runs/run-2", r.URL.Path)
		fmt.Fprint(w, `{"data": {"id": "run-2", "status": "SUCCEEDED", "defaultDatasetId": "ds-2"}}`)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL)
	run, err := client.WaitForRun(context.Background(), "run-2", "")

	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, run.Status)
	assert.Equal(t, "ds-2", run.DefaultDatasetID)
}

func TestWaitForRunFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"id": "run-3", "status": "FAILED"}}`)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL)
	_, err := client.WaitForRun(context.Background(), "run-3", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAILED")
}

func TestWaitForRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("secret", "http://127.0.0.1:0")
	_, err := client.WaitForRun(ctx, "run-4", "")

	require.Error(t, err)
}

func TestDatasetItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/datasets/ds-5/items", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "true", r.URL.Query().Get("clean"))
		fmt.Fprint(w, `[{"id": "a"}, {"id": "b"}]`)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL)
	items, err := client.DatasetItems(context.Background(), "ds-5")

	require.NoError(t, err)
	require.Len(t, items, 2)

	var first map[string]string
	require.NoError(t, json.Unmarshal(items[0], &first))
	assert.Equal(t, "a", first["id"])
}
