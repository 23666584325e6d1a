// internal/flights/client.go
package flights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-ranker/internal/common/config"
	commonerrors "trip-ranker/internal/common/errors"
	httpclient "trip-ranker/internal/common/http"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/models"
)

const (
	tboStatusSuccess = 1
	defaultTokenTTL  = time.Hour
)

// SearchRequest is a one-way, one-adult economy search.
type SearchRequest struct {
	Origin        string
	Destination   string
	DepartureDate string
}

// SearchRequestFromIntent takes the airport codes and date straight from the
// raw intent.
func SearchRequestFromIntent(raw models.RawIntent) SearchRequest {
	return SearchRequest{
		Origin:        strings.ToUpper(strings.TrimSpace(raw.Origin)),
		Destination:   strings.ToUpper(strings.TrimSpace(raw.Destination)),
		DepartureDate: strings.TrimSpace(raw.DepartureDate),
	}
}

// Complete reports whether the request has what the search API requires.
func (r SearchRequest) Complete() bool {
	return r.Origin != "" && r.DepartureDate != ""
}

type TBOConfig struct {
	AuthURL    string
	SearchURL  string
	ClientID   string
	Username   string
	Password   string
	EndUserIP  string
	TokenTTL   time.Duration
	Timeout    time.Duration
	MaxRetries int
}

// TBOConfigFrom converts the millisecond settings of the config file.
func TBOConfigFrom(cfg config.FlightSearchConfig) TBOConfig {
	return TBOConfig{
		AuthURL:    cfg.AuthURL,
		SearchURL:  cfg.SearchURL,
		ClientID:   cfg.ClientID,
		Username:   cfg.Username,
		Password:   cfg.Password,
		EndUserIP:  cfg.EndUserIP,
		TokenTTL:   time.Duration(cfg.TokenTTL) * time.Millisecond,
		Timeout:    time.Duration(cfg.Timeout) * time.Millisecond,
		MaxRetries: cfg.MaxRetries,
	}
}

// TBOClient talks to the TekTravels air API.
type TBOClient struct {
	config TBOConfig
	http   *httpclient.Client
	tokens TokenCache
	logger logger.Logger
}

func NewTBOClient(cfg TBOConfig, tokens TokenCache, log logger.Logger, opts ...httpclient.Option) *TBOClient {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if tokens == nil {
		tokens = NewMemoryTokenCache()
	}
	opts = append([]httpclient.Option{httpclient.WithRetries(cfg.MaxRetries)}, opts...)
	return &TBOClient{
		config: cfg,
		http:   httpclient.NewClient(cfg.Timeout, opts...),
		tokens: tokens,
		logger: log.WithFields(map[string]interface{}{"component": "tbo-client"}),
	}
}

type authRequest struct {
	ClientID  string `json:"ClientId"`
	UserName  string `json:"UserName"`
	Password  string `json:"Password"`
	EndUserIP string `json:"EndUserIp"`
}

type authResponse struct {
	Status  int    `json:"Status"`
	TokenID string `json:"TokenId"`
	Error   struct {
		ErrorCode    int    `json:"ErrorCode"`
		ErrorMessage string `json:"ErrorMessage"`
	} `json:"Error"`
}

// Authenticate returns the cached token or logs in for a new one. Failures are
// FLIGHT_AUTH_FAILED or FLIGHT_API_TIMEOUT StandardErrors.
func (c *TBOClient) Authenticate(ctx context.Context) (string, error) {
	token, ok, err := c.tokens.Get(ctx)
	if err != nil {
		c.logger.Warn("token cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if ok {
		return token, nil
	}

	var resp authResponse
	err = c.http.PostJSON(ctx, c.config.AuthURL, authRequest{
		ClientID:  c.config.ClientID,
		UserName:  c.config.Username,
		Password:  c.config.Password,
		EndUserIP: c.config.EndUserIP,
	}, &resp)
	if errors.Is(err, httpclient.ErrTimeout) {
		return "", commonerrors.NewFlightAPITimeoutError()
	}
	if err != nil {
		return "", commonerrors.NewFlightAuthFailedError(err)
	}
	if resp.Status != tboStatusSuccess || resp.TokenID == "" {
		return "", commonerrors.NewFlightAuthFailedError(
			fmt.Errorf("status %d: %s", resp.Status, resp.Error.ErrorMessage))
	}

	if err := c.tokens.Set(ctx, resp.TokenID, c.config.TokenTTL); err != nil {
		c.logger.Warn("token cache write failed", map[string]interface{}{"error": err.Error()})
	}

	c.logger.Info("authenticated with flight api", map[string]interface{}{
		"tokenTtlMs": c.config.TokenTTL.Milliseconds(),
	})
	return resp.TokenID, nil
}

type searchSegment struct {
	Origin                 string `json:"Origin"`
	Destination            string `json:"Destination"`
	FlightCabinClass       int    `json:"FlightCabinClass"`
	PreferredDepartureTime string `json:"PreferredDepartureTime"`
}

type searchPayload struct {
	AdultCount        string          `json:"AdultCount"`
	ChildCount        string          `json:"ChildCount"`
	InfantCount       string          `json:"InfantCount"`
	IsDomestic        string          `json:"IsDomestic"`
	BookingMode       string          `json:"BookingMode"`
	DirectFlight      string          `json:"DirectFlight"`
	OneStopFlight     string          `json:"OneStopFlight"`
	JourneyType       string          `json:"JourneyType"`
	EndUserIP         string          `json:"EndUserIp"`
	TokenID           string          `json:"TokenId"`
	Segments          []searchSegment `json:"Segments"`
	ResultFareType    int             `json:"ResultFareType"`
	PreferredCurrency string          `json:"PreferredCurrency"`
}

type tboSegment struct {
	Airline struct {
		AirlineName string `json:"AirlineName"`
	} `json:"Airline"`
	Origin struct {
		DepTime string `json:"DepTime"`
	} `json:"Origin"`
	Duration int `json:"Duration"`
}

type tboResult struct {
	Fare struct {
		PublishedFare float64 `json:"PublishedFare"`
	} `json:"Fare"`
	Segments [][]tboSegment `json:"Segments"`
}

type searchResponse struct {
	Response struct {
		ResponseStatus int           `json:"ResponseStatus"`
		Results        [][]tboResult `json:"Results"`
		Error          struct {
			ErrorCode    int    `json:"ErrorCode"`
			ErrorMessage string `json:"ErrorMessage"`
		} `json:"Error"`
	} `json:"Response"`
}

// Search returns the outbound offers for req. An incomplete request yields no
// flights and no error. Failures are FLIGHT_* StandardErrors.
func (c *TBOClient) Search(ctx context.Context, req SearchRequest) ([]models.Flight, error) {
	if !req.Complete() {
		c.logger.Debug("skipping flight search, origin or departure date missing", map[string]interface{}{
			"origin":        req.Origin,
			"departureDate": req.DepartureDate,
		})
		return []models.Flight{}, nil
	}

	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	payload := searchPayload{
		AdultCount:    "1",
		ChildCount:    "0",
		InfantCount:   "0",
		IsDomestic:    "true",
		BookingMode:   "5",
		DirectFlight:  "false",
		OneStopFlight: "false",
		JourneyType:   "1",
		EndUserIP:     c.config.EndUserIP,
		TokenID:       token,
		Segments: []searchSegment{{
			Origin:                 req.Origin,
			Destination:            req.Destination,
			FlightCabinClass:       1,
			PreferredDepartureTime: req.DepartureDate,
		}},
		PreferredCurrency: "INR",
	}

	var resp searchResponse
	err = c.http.PostJSON(ctx, c.config.SearchURL, payload, &resp)
	if errors.Is(err, httpclient.ErrTimeout) {
		return nil, commonerrors.NewFlightAPITimeoutError()
	}
	if err != nil {
		return nil, commonerrors.NewFlightSearchFailedError(err)
	}
	if resp.Response.ResponseStatus != tboStatusSuccess {
		return nil, commonerrors.NewFlightSearchFailedError(fmt.Errorf("status %d: %s",
			resp.Response.ResponseStatus, resp.Response.Error.ErrorMessage))
	}

	flights := normalizeResults(resp)
	c.logger.Info("flights fetched", map[string]interface{}{
		"origin":      req.Origin,
		"destination": req.Destination,
		"count":       len(flights),
	})
	return flights, nil
}

func normalizeResults(resp searchResponse) []models.Flight {
	flights := make([]models.Flight, 0)
	if len(resp.Response.Results) == 0 {
		return flights
	}

	for _, r := range resp.Response.Results[0] {
		var (
			seg   tboSegment
			stops int
		)
		if len(r.Segments) > 0 && len(r.Segments[0]) > 0 {
			seg = r.Segments[0][0]
			stops = len(r.Segments[0]) - 1
		}

		f := models.Flight{
			Airline: seg.Airline.AirlineName,
			Price:   r.Fare.PublishedFare,
			Stops:   stops,
			Time:    clockTime(seg.Origin.DepTime),
		}
		if seg.Duration > 0 {
			f.Duration = fmt.Sprintf("%d mins", seg.Duration)
		}
		flights = append(flights, f)
	}
	return flights
}

// clockTime extracts HH:MM from "2025-01-15T06:40:00".
func clockTime(depTime string) string {
	_, clock, found := strings.Cut(depTime, "T")
	if !found || len(clock) < 5 {
		return ""
	}
	return clock[:5]
}
