// Package seranking is a client for the SE Ranking position tracking
// api: sites, keywords, search engine bindings and ranking statistics.
// The client keeps a session token across process restarts through an
// injectable key-value store and caches slow-changing reference data.
package seranking

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"seranking/lib/keyvalue"
	"seranking/lib/refcache"
	"seranking/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/net/publicsuffix"
)

var tracer = otel.Tracer("lib/seranking")

const DefaultBaseURL = "http://online.seranking.com/structure/clientapi/v2.php"

// DefaultRefreshInterval bounds the age of cached reference data.
const DefaultRefreshInterval = 24 * time.Hour

const (
	connectTimeout = 15 * time.Second
	totalTimeout   = 10 * time.Second
	maxRedirects   = 3
)

const (
	tokenKey   = "token"
	enginesKey = "engines"
	geoKey     = "ya.geo"
)

type Options struct {
	// BaseURL overrides the default api endpoint.
	BaseURL string
	// Login is the account email.
	Login string
	// PasswordMD5 is the md5 digest of the account password. The server
	// never receives a cleartext password.
	PasswordMD5 string
	// RefreshInterval overrides DefaultRefreshInterval.
	RefreshInterval time.Duration
	// Store persists the session token and cached reference data.
	Store keyvalue.Store
	// GeoURL overrides the yandex geo region file source.
	GeoURL string
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// Client is a stateful, synchronous api client. It owns exactly one
// session and is not safe for concurrent use; callers needing parallelism
// create one client per worker or serialize access externally.
type Client struct {
	login       string
	passwordMD5 string
	refresh     time.Duration
	geoURL      string

	http  *resty.Client
	geo   *resty.Client
	store keyvalue.Store
	cache *refcache.Cache
	now   func() time.Time

	token string
}

// NewClient validates the configuration and loads any previously issued
// token from the store. It performs no network calls; authentication
// happens lazily on the first operation that needs a token.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.Login == "" {
		return nil, fmt.Errorf("%w: login is required", ErrConfiguration)
	}
	if opts.PasswordMD5 == "" {
		return nil, fmt.Errorf("%w: password md5 digest is required", ErrConfiguration)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: token store is required", ErrConfiguration)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q is not a valid url", ErrConfiguration, baseURL)
	}

	refresh := opts.RefreshInterval
	if refresh == 0 {
		refresh = DefaultRefreshInterval
	}
	geoURL := opts.GeoURL
	if geoURL == "" {
		geoURL = yandexRegionsURL
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	c := &Client{
		login:       opts.Login,
		passwordMD5: opts.PasswordMD5,
		refresh:     refresh,
		geoURL:      geoURL,
		http:        newHTTPClient(baseURL),
		store:       opts.Store,
		cache:       refcache.NewWithClock(opts.Store, now),
		now:         now,
	}

	raw, ok, err := opts.Store.Get(ctx, tokenKey)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if ok {
		c.token = string(raw)
	}
	return c, nil
}

func newHTTPClient(baseURL string) *resty.Client {
	client := resty.New()
	client.SetBaseURL(baseURL)

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err == nil {
		client.SetCookieJar(jar)
	}

	client.SetTransport(&http.Transport{
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	})
	client.SetTimeout(totalTimeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))

	telemetry.InstrumentResty(client, "seranking/http")
	return client
}

type params map[string]string

// get performs a read call: method, token and parameters all travel as
// top-level request fields.
func (c *Client) get(ctx context.Context, method string, p params, extra url.Values, out any) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("method", method).
		SetQueryParam("token", token)
	for k, v := range p {
		req.SetQueryParam(k, v)
	}
	if extra != nil {
		req.SetQueryParamsFromValues(extra)
	}

	res, err := req.Get("")
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return decode(method, res, out)
}

// post performs a mutating call: method and token travel on the query
// string, the full parameter object is json-encoded into a single form
// field named "data". The remote api requires this exact shape.
func (c *Client) post(ctx context.Context, method string, payload any, out any) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encode payload: %w", method, err)
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("method", method).
		SetQueryParam("token", token).
		SetFormData(map[string]string{"data": string(data)}).
		Post("")
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return decode(method, res, out)
}

func decode(method string, res *resty.Response, out any) error {
	if !res.IsSuccess() {
		return apiError(method, res)
	}
	if out == nil {
		return nil
	}
	err := json.Unmarshal(res.Body(), out)
	if err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	return nil
}

func apiError(method string, res *resty.Response) error {
	e := &APIError{Method: method, StatusCode: res.StatusCode()}

	var body struct {
		Code    FlexInt `json:"code"`
		Message string  `json:"message"`
	}
	if json.Unmarshal(res.Body(), &body) == nil {
		e.Code = body.Code.Int64()
		e.Message = body.Message
	}
	return e
}
