package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SalahTracker/models"
)

// PrayerTimesSource returns the raw source times (Fajr, Sunrise, Dhuhr, Asr,
// Maghrib, Isha) for a date at a location.
type PrayerTimesSource interface {
	FetchTimings(ctx context.Context, date time.Time, coords models.Coordinates) ([]models.PrayerTime, error)
}

// AladhanClient talks to the api.aladhan.com timings endpoint.
type AladhanClient struct {
	BaseURL    string
	Method     int
	HTTPClient *http.Client
}

func NewAladhanClient(baseURL string, method int) *AladhanClient {
	return &AladhanClient{
		BaseURL:    baseURL,
		Method:     method,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type aladhanResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

func (c *AladhanClient) FetchTimings(ctx context.Context, date time.Time, coords models.Coordinates) ([]models.PrayerTime, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	q.Set("method", strconv.Itoa(c.Method))
	endpoint := fmt.Sprintf("%s/timings/%s?%s", c.BaseURL, date.Format(DateLayout), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: prayer times source returned status %d", ErrDataUnavailable, resp.StatusCode)
	}

	var body aladhanResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode timings: %v", ErrDataUnavailable, err)
	}

	times := make([]models.PrayerTime, 0, len(models.SourcePrayers))
	for _, name := range models.SourcePrayers {
		if t, ok := body.Data.Timings[name]; ok {
			times = append(times, models.PrayerTime{Name: name, Time: t})
		}
	}
	return times, nil
}
