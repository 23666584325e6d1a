// internal/inventory/elasticsearch.go
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	commonerrors "trip-ranker/internal/common/errors"
	"trip-ranker/internal/common/logger"
)

// maxCatalogHits bounds a single match_all over a catalog index.
const maxCatalogHits = 1000

const catalogQuery = `{"query":{"match_all":{}},"sort":[{"position":{"order":"asc","unmapped_type":"long"}}]}`

// ElasticsearchStore reads hotels and activities from their indices. Fallback
// flights and destination metadata come from the bundled fixtures.
type ElasticsearchStore struct {
	client          *elasticsearch.Client
	hotelsIndex     string
	activitiesIndex string
	logger          logger.Logger
}

func NewElasticsearchStore(client *elasticsearch.Client, hotelsIndex, activitiesIndex string, log logger.Logger) *ElasticsearchStore {
	return &ElasticsearchStore{
		client:          client,
		hotelsIndex:     hotelsIndex,
		activitiesIndex: activitiesIndex,
		logger:          log.WithFields(map[string]interface{}{"store": "elasticsearch"}),
	}
}

func (s *ElasticsearchStore) Name() string { return "elasticsearch" }

func (s *ElasticsearchStore) Load(ctx context.Context) (*Catalog, error) {
	cat := Fixtures()
	cat.Hotels = nil
	cat.Activities = nil

	if err := s.search(ctx, s.hotelsIndex, &cat.Hotels); err != nil {
		return nil, err
	}
	if err := s.search(ctx, s.activitiesIndex, &cat.Activities); err != nil {
		return nil, err
	}

	s.logger.Debug("catalog loaded", map[string]interface{}{
		"hotels":     len(cat.Hotels),
		"activities": len(cat.Activities),
	})
	return cat, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// search decodes every hit's _source of index into out, a pointer to a slice.
func (s *ElasticsearchStore) search(ctx context.Context, index string, out interface{}) error {
	size := maxCatalogHits
	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(catalogQuery),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return commonerrors.NewSearchQueryFailedError(index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return commonerrors.NewIndexNotFoundError(index)
	}
	if res.IsError() {
		return commonerrors.NewSearchQueryFailedError(index, fmt.Errorf("%s", res.String()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return commonerrors.NewSearchQueryFailedError(index, err)
	}

	sources := make([]json.RawMessage, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		sources = append(sources, hit.Source)
	}
	raw, err := json.Marshal(sources)
	if err != nil {
		return commonerrors.NewSearchQueryFailedError(index, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return commonerrors.NewSearchQueryFailedError(index, err)
	}
	return nil
}
