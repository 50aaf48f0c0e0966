// Package ingestion fetches the UPSVAC all-routes table and turns it into
// a validated snapshot of airports, aircraft and legs.
package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/metrics"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/snapshot"
	"github.com/Jettpacked/UPSVAC-FlightFinder/pkg/models"
)

const (
	defaultBaseURL = "https://icrew.upsvac.com"

	// Path of the HTML page listing every route in one table.
	allRoutesPath = "/index.php/allroutes"

	// Connection pool settings
	maxIdleConns        = 10
	maxConnsPerHost     = 5
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second

	// Retry settings
	defaultMaxRetries  = 5
	defaultBaseBackoff = 1 * time.Second
	maxBackoff         = 60 * time.Second
	backoffFactor      = 2.0
)

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the UPSVAC endpoint (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithRetryPolicy overrides the retry count and initial backoff.
func WithRetryPolicy(maxRetries int, baseBackoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// Client fetches route data from the UPSVAC crew site.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// NewClient creates a UPSVAC client with connection pooling.
func NewClient(opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
	}

	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBaseBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSnapshot retrieves the all-routes page, parses the route table and
// assembles a validated snapshot.
func (c *Client) FetchSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	start := time.Now()
	snap, err := c.fetchSnapshot(ctx)
	metrics.IngestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.IngestRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.IngestRequests.WithLabelValues("success").Inc()
	return snap, nil
}

func (c *Client) fetchSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	url := c.baseURL + allRoutesPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	rows, err := parseRouteTable(doc)
	if err != nil {
		return nil, err
	}

	return buildSnapshot(uniqueRows(rows))
}

// FetchSnapshotWithRetry fetches with exponential backoff on failure.
func (c *Client) FetchSnapshotWithRetry(ctx context.Context) (*snapshot.Snapshot, error) {
	var lastErr error
	backoff := c.baseBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff = time.Duration(float64(backoff) * backoffFactor)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		snap, err := c.FetchSnapshot(ctx)
		if err == nil {
			return snap, nil
		}
		lastErr = err

		// Don't retry on context cancellation
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// ---------------------------------------------------------------------------
// Route Table Parsing
// ---------------------------------------------------------------------------

// routeRow is one parsed line of the all-routes table.
type routeRow struct {
	DepCode  string
	DepName  string
	ArrCode  string
	ArrName  string
	Aircraft string
	Distance float64
}

// parseRouteTable extracts route rows from the page's main table.
// Column layout: 1 departure, 2 destination, 4 aircraft, 6 distance.
func parseRouteTable(doc *goquery.Document) ([]routeRow, error) {
	table := doc.Find("table#example tbody")
	if table.Length() == 0 {
		return nil, fmt.Errorf("route table not found in response")
	}

	var rows []routeRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 7 {
			return
		}

		depCode, depName := splitAirportCell(tds.Eq(1).Text())
		arrCode, arrName := splitAirportCell(tds.Eq(2).Text())
		if depCode == "" || arrCode == "" {
			return
		}

		rows = append(rows, routeRow{
			DepCode:  depCode,
			DepName:  depName,
			ArrCode:  arrCode,
			ArrName:  arrName,
			Aircraft: strings.TrimSpace(tds.Eq(4).Text()),
			Distance: parseDistanceCell(tds.Eq(6).Text()),
		})
	})

	return rows, nil
}

// splitAirportCell parses strings like "AYPY (Jacksons International Airport)"
// into the ICAO code and the display name.
func splitAirportCell(s string) (code, name string) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "("); i >= 0 {
		name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s[i+1:]), ")"))
		s = strings.TrimSpace(s[:i])
	}
	if fields := strings.Fields(s); len(fields) > 0 {
		code = fields[0]
	}
	return code, name
}

// parseDistanceCell parses strings like "1387 nm" into nautical miles.
// Unparseable cells come back as 0 and are dropped with the other
// zero-distance rows.
func parseDistanceCell(s string) float64 {
	before, _, _ := strings.Cut(s, "nm")
	v, err := strconv.ParseFloat(strings.TrimSpace(before), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// uniqueRows drops exact duplicate rows and rows with zero distance.
func uniqueRows(rows []routeRow) []routeRow {
	seen := make(map[routeRow]struct{}, len(rows))
	out := make([]routeRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		if r.Distance == 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// buildSnapshot derives the airport and aircraft collections from the leg
// rows (the upstream page defines both implicitly) and assembles the
// snapshot. The first row naming an airport supplies its display name.
func buildSnapshot(rows []routeRow) (*snapshot.Snapshot, error) {
	airports := make(map[string]string, len(rows))
	aircraft := make(map[string]struct{}, 16)
	legs := make([]models.Leg, 0, len(rows))

	for _, r := range rows {
		if name, ok := airports[r.DepCode]; !ok || name == "" {
			airports[r.DepCode] = r.DepName
		}
		if name, ok := airports[r.ArrCode]; !ok || name == "" {
			airports[r.ArrCode] = r.ArrName
		}
		aircraft[r.Aircraft] = struct{}{}

		legs = append(legs, models.Leg{
			Origin:      r.DepCode,
			Destination: r.ArrCode,
			Distance:    r.Distance,
			Aircraft:    []string{r.Aircraft},
		})
	}

	airportList := make([]models.Airport, 0, len(airports))
	for code, name := range airports {
		airportList = append(airportList, models.Airport{Code: code, Name: name})
	}
	aircraftList := make([]models.Aircraft, 0, len(aircraft))
	for id := range aircraft {
		aircraftList = append(aircraftList, models.Aircraft{ID: id, Name: id})
	}

	return snapshot.New(airportList, aircraftList, legs)
}
