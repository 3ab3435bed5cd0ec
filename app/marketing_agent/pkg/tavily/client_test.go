package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search"
)

func TestClient_Search(t *testing.T) {
	var got SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tvly-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Query: got.Query,
			Results: []SearchResult{
				{Title: "HubSpot CRM", URL: "https://www.hubspot.com/products/crm", Content: "Free CRM", Score: 0.9},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("tvly-key").WithEndpoint(srv.URL)
	resp, err := c.Search(context.Background(), &search.Request{Query: "https://www.hubspot.com", MaxResults: 10, TimeRange: "month"})
	require.NoError(t, err)

	assert.Equal(t, "basic", got.SearchDepth)
	assert.Equal(t, "general", got.Topic)
	assert.Equal(t, 10, got.MaxResults)
	assert.Equal(t, "month", got.TimeRange)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "HubSpot CRM", resp.Results[0].Title)
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient("k").WithEndpoint(srv.URL).Search(context.Background(), &search.Request{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
