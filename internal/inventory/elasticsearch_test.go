// internal/inventory/elasticsearch_test.go
package inventory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "trip-ranker/internal/common/errors"
)

const hotelsResponse = `{
	"hits": {"hits": [
		{"_source": {"name": "Index Hotel", "pricePerNight": 2100, "nearMetro": true, "rating": 4.1, "amenities": ["WiFi"]}}
	]}
}`

const activitiesResponse = `{
	"hits": {"hits": [
		{"_source": {"name": "Scuba Diving", "location": "goa", "tags": ["adventure"], "price": 3500}},
		{"_source": {"name": "Fort Walk", "location": "jaipur", "tags": ["history"], "price": 300}}
	]}
}`

type searchResp struct {
	status int
	body   string
}

// newSearchServer answers _search on each index with the given status and body.
func newSearchServer(t *testing.T, responses map[string]searchResp) *elasticsearch.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		resp, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"},"status":404}`))
			return
		}
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchStore_Load_Success(t *testing.T) {
	client := newSearchServer(t, map[string]searchResp{
		"/hotels/_search":     {http.StatusOK, hotelsResponse},
		"/activities/_search": {http.StatusOK, activitiesResponse},
	})

	store := NewElasticsearchStore(client, "hotels", "activities", newTestLogger(t))
	assert.Equal(t, "elasticsearch", store.Name())

	cat, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, cat.Hotels, 1)
	assert.Equal(t, "Index Hotel", cat.Hotels[0].Name)
	assert.True(t, cat.Hotels[0].NearMetro)
	assert.Equal(t, 2100.0, cat.Hotels[0].PricePerNight)

	require.Len(t, cat.Activities, 2)
	assert.Equal(t, "goa", cat.Activities[0].Location)
	assert.Equal(t, []string{"history"}, cat.Activities[1].Tags)

	// flights and destinations stay on the bundled fixtures
	assert.Len(t, cat.Flights, 5)
	assert.Len(t, cat.Destinations, 9)
}

func TestElasticsearchStore_Load_EmptyIndex(t *testing.T) {
	client := newSearchServer(t, map[string]searchResp{
		"/hotels/_search":     {http.StatusOK, `{"hits":{"hits":[]}}`},
		"/activities/_search": {http.StatusOK, activitiesResponse},
	})

	cat, err := NewElasticsearchStore(client, "hotels", "activities", newTestLogger(t)).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Hotels)
	assert.Len(t, cat.Activities, 2)
}

func TestElasticsearchStore_Load_Errors(t *testing.T) {
	tests := []struct {
		name      string
		responses map[string]searchResp
		wantCode  commonerrors.ErrorCode
	}{
		{
			name: "missing activities index",
			responses: map[string]searchResp{
				"/hotels/_search": {http.StatusOK, hotelsResponse},
			},
			wantCode: commonerrors.ErrCodeIndexNotFound,
		},
		{
			name: "server error",
			responses: map[string]searchResp{
				"/hotels/_search": {http.StatusBadRequest, `{"error":{"type":"search_phase_execution_exception"},"status":400}`},
			},
			wantCode: commonerrors.ErrCodeSearchQueryFailed,
		},
		{
			name: "undecodable body",
			responses: map[string]searchResp{
				"/hotels/_search": {http.StatusOK, `{"hits":`},
			},
			wantCode: commonerrors.ErrCodeSearchQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newSearchServer(t, tt.responses)

			cat, err := NewElasticsearchStore(client, "hotels", "activities", newTestLogger(t)).Load(context.Background())
			require.Error(t, err)
			assert.Nil(t, cat)

			var stdErr *commonerrors.StandardError
			require.True(t, errors.As(err, &stdErr))
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}
}
