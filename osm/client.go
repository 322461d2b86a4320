package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gocolly/colly/v2"
)

const (
	DefaultOverpassURL  = "https://overpass-api.de/api/interpreter"
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	DefaultUserAgent    = "rute/0.1 (+https://github.com/uinsaizu/rute)"
)

// ClientOptions configures the HTTP side of Client.
type ClientOptions struct {
	OverpassURL  string
	NominatimURL string
	UserAgent    string
	Timeout      time.Duration // per request
	Retry        int           // extra attempts after the first
	RetryDelay   time.Duration // wait between attempts, multiplied by attempt number
}

// DefaultClientOptions returns the public endpoints with a three minute timeout
// and two retries.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		OverpassURL:  DefaultOverpassURL,
		NominatimURL: DefaultNominatimURL,
		UserAgent:    DefaultUserAgent,
		Timeout:      3 * time.Minute,
		Retry:        2,
		RetryDelay:   5 * time.Second,
	}
}

// Client geocodes places with Nominatim and downloads ways from Overpass.
type Client struct {
	opts ClientOptions
}

// NewClient fills empty fields of opts from DefaultClientOptions.
func NewClient(opts ClientOptions) *Client {
	def := DefaultClientOptions()
	if opts.OverpassURL == "" {
		opts.OverpassURL = def.OverpassURL
	}
	if opts.NominatimURL == "" {
		opts.NominatimURL = def.NominatimURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Retry < 0 {
		opts.Retry = 0
	}

	return &Client{opts: opts}
}

// Fetch geocodes every place, downloads its network and merges the results.
// onPlace, if non-nil, is called after each place completes.
func (c *Client) Fetch(ctx context.Context, places []string, nt NetworkType, onPlace func(place string)) (*Document, error) {
	if _, ok := wayFilters[nt]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNetworkType, nt)
	}

	docs := make([]*Document, 0, len(places))
	for _, q := range places {
		place, err := c.Geocode(ctx, q)
		if err != nil {
			return nil, err
		}
		doc, err := c.FetchPlace(ctx, place, nt)
		if err != nil {
			return nil, fmt.Errorf("downloading %q: %w", q, err)
		}
		docs = append(docs, doc)
		if onPlace != nil {
			onPlace(q)
		}
	}

	return Merge(docs...), nil
}

// nominatimResult is one entry of a Nominatim JSON search response.
type nominatimResult struct {
	OSMType     string `json:"osm_type"`
	OSMID       int64  `json:"osm_id"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-form place query to the first area-like OSM object.
func (c *Client) Geocode(ctx context.Context, query string) (Place, error) {
	u, err := url.Parse(c.opts.NominatimURL)
	if err != nil {
		return Place{}, fmt.Errorf("bad nominatim url: %w", err)
	}
	params := u.Query()
	params.Set("format", "json")
	params.Set("limit", "5")
	params.Set("q", query)
	u.RawQuery = params.Encode()

	body, err := c.do(ctx, func(col *colly.Collector) error {
		return col.Visit(u.String())
	})
	if err != nil {
		return Place{}, fmt.Errorf("geocoding %q: %w", query, err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return Place{}, fmt.Errorf("%w: geocoding %q: %s", ErrBadResponse, query, err)
	}
	for _, r := range results {
		if r.OSMType == "relation" || r.OSMType == "way" {
			log.Debugf("geocoded %q as %s %d (%s)", query, r.OSMType, r.OSMID, r.DisplayName)
			return Place{Query: query, DisplayName: r.DisplayName, OSMType: r.OSMType, OSMID: r.OSMID}, nil
		}
	}

	return Place{}, fmt.Errorf("%w: %q", ErrPlaceNotFound, query)
}

// FetchPlace downloads and parses the network inside one geocoded place.
func (c *Client) FetchPlace(ctx context.Context, place Place, nt NetworkType) (*Document, error) {
	areaID, err := place.AreaID()
	if err != nil {
		return nil, err
	}
	query, err := OverpassQuery(areaID, nt, c.opts.Timeout)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, func(col *colly.Collector) error {
		return col.Post(c.opts.OverpassURL, map[string]string{"data": query})
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("overpass returned %s for %q", humanize.Bytes(uint64(len(body))), place.Query)

	return Parse(body)
}

// newCollector builds a synchronous collector bound to ctx.
func (c *Client) newCollector(ctx context.Context) *colly.Collector {
	col := colly.NewCollector(
		colly.UserAgent(c.opts.UserAgent),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(0),
		colly.StdlibContext(ctx),
	)
	col.SetRequestTimeout(c.opts.Timeout)

	return col
}

// do runs send on a fresh collector, retrying on failure, and returns the
// body of the first successful response.
func (c *Client) do(ctx context.Context, send func(col *colly.Collector) error) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.opts.Retry; attempt++ {
		if attempt > 0 {
			log.Warnf("retrying request (%d/%d): %s", attempt, c.opts.Retry, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.opts.RetryDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var body []byte
		col := c.newCollector(ctx)
		col.OnResponse(func(r *colly.Response) {
			body = r.Body
		})

		err := send(col)
		if err == nil && body != nil {
			return body, nil
		}
		if err == nil {
			err = fmt.Errorf("empty response")
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w after %d attempt(s): %s", ErrRequest, c.opts.Retry+1, lastErr)
}
