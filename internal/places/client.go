package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/octobees/recycling-finder/internal/entity"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// The places backend requires a short delay before a next-page cursor
// becomes valid; one request per pageDelay keeps us on the right side of it.
const pageDelay = 2 * time.Second

var (
	// ErrNotFound indicates the geocoder could not resolve the location.
	ErrNotFound = errors.New("location not found")
	// ErrCursorExpired indicates a next-page token that the backend no
	// longer accepts. Callers should keep the results they already have.
	ErrCursorExpired = errors.New("page cursor expired")
)

// Summary is one entry of a nearby-search page.
type Summary struct {
	Name        string
	PlaceID     string
	Rating      *float64
	Coordinates entity.Coordinates
}

// Page is one page of nearby-search results with its continuation cursor.
type Page struct {
	Results       []Summary
	NextPageToken string
}

// Details is the full place record for a single business.
type Details struct {
	FormattedAddress string
	Phone            *string
	Website          *string
	Rating           *float64
	WeekdayHours     []string
	AddressParts     entity.AddressComponents
}

// Client calls the geocoding and places web services. Paged requests are
// throttled so continuation cursors have time to activate.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pager      *rate.Limiter
}

// NewClient builds a places client. A nil http.Client falls back to a
// timeout-guarded default.
func NewClient(client *http.Client, apiKey string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: client,
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		pager:      rate.NewLimiter(rate.Every(pageDelay), 1),
	}
}

// WithBaseURL points the client at a different backend, used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Geocode resolves a free-form location string to coordinates.
func (c *Client) Geocode(ctx context.Context, location string) (entity.Coordinates, error) {
	query := url.Values{}
	query.Set("address", location)
	query.Set("key", c.apiKey)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location entity.Coordinates `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/geocode/json", query, &payload); err != nil {
		return entity.Coordinates{}, err
	}

	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		return entity.Coordinates{}, fmt.Errorf("geocode %q: %w", location, ErrNotFound)
	}
	if payload.Status != "OK" {
		return entity.Coordinates{}, fmt.Errorf("geocode %q: status %s", location, payload.Status)
	}
	return payload.Results[0].Geometry.Location, nil
}

// Nearby fetches one page of establishments around the center. Pass the
// previous page's token to continue; the client waits out the backend's
// inter-page delay before a cursor request.
func (c *Client) Nearby(ctx context.Context, center entity.Coordinates, radiusMeters int, keyword, pageToken string) (Page, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	if pageToken != "" {
		if err := c.pager.Wait(ctx); err != nil {
			return Page{}, fmt.Errorf("wait for page cursor: %w", err)
		}
		query.Set("pagetoken", pageToken)
	} else {
		query.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
		query.Set("radius", fmt.Sprintf("%d", radiusMeters))
		query.Set("keyword", keyword)
		query.Set("type", "establishment")
	}

	var payload struct {
		Status        string `json:"status"`
		NextPageToken string `json:"next_page_token"`
		Results       []struct {
			Name     string   `json:"name"`
			PlaceID  string   `json:"place_id"`
			Rating   *float64 `json:"rating"`
			Geometry struct {
				Location entity.Coordinates `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/place/nearbysearch/json", query, &payload); err != nil {
		return Page{}, err
	}

	switch payload.Status {
	case "OK", "ZERO_RESULTS":
	case "INVALID_REQUEST":
		if pageToken != "" {
			return Page{}, ErrCursorExpired
		}
		return Page{}, fmt.Errorf("nearby search rejected: %s", payload.Status)
	default:
		return Page{}, fmt.Errorf("nearby search failed: status %s", payload.Status)
	}

	page := Page{NextPageToken: payload.NextPageToken}
	for _, r := range payload.Results {
		page.Results = append(page.Results, Summary{
			Name:        r.Name,
			PlaceID:     r.PlaceID,
			Rating:      r.Rating,
			Coordinates: r.Geometry.Location,
		})
	}
	return page, nil
}

// Details fetches the full record for a place.
func (c *Client) Details(ctx context.Context, placeID string) (Details, error) {
	query := url.Values{}
	query.Set("place_id", placeID)
	query.Set("key", c.apiKey)

	var payload struct {
		Status string `json:"status"`
		Result struct {
			FormattedAddress string   `json:"formatted_address"`
			Phone            *string  `json:"formatted_phone_number"`
			Website          *string  `json:"website"`
			Rating           *float64 `json:"rating"`
			OpeningHours     struct {
				WeekdayText []string `json:"weekday_text"`
			} `json:"opening_hours"`
			AddressComponents []struct {
				LongName string   `json:"long_name"`
				Types    []string `json:"types"`
			} `json:"address_components"`
		} `json:"result"`
	}
	if err := c.getJSON(ctx, "/place/details/json", query, &payload); err != nil {
		return Details{}, err
	}
	if payload.Status != "OK" {
		return Details{}, fmt.Errorf("place details %s: status %s", placeID, payload.Status)
	}

	details := Details{
		FormattedAddress: payload.Result.FormattedAddress,
		Phone:            payload.Result.Phone,
		Website:          payload.Result.Website,
		Rating:           payload.Result.Rating,
		WeekdayHours:     payload.Result.OpeningHours.WeekdayText,
	}
	for _, component := range payload.Result.AddressComponents {
		for _, kind := range component.Types {
			switch kind {
			case "route":
				details.AddressParts.StreetAddress = component.LongName
			case "postal_town", "locality":
				if details.AddressParts.City == "" {
					details.AddressParts.City = component.LongName
				}
			case "administrative_area_level_1":
				details.AddressParts.State = component.LongName
			case "postal_code":
				details.AddressParts.PostalCode = component.LongName
			case "country":
				details.AddressParts.Country = component.LongName
			}
		}
	}
	return details, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("places backend returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode places response: %w", err)
	}
	return nil
}
