// Package api is the HTTP client for the family portal backend.
//
// The portal exposes the member export consumed by the parse stage plus a
// small account endpoint used at login. All requests authenticate with a
// bearer token held in the session store; a 401 clears the stored session
// and surfaces as SESSION_EXPIRED so the CLI can prompt for a fresh login.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sbhuiyan/kintree/pkg/cache"
	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
	"github.com/sbhuiyan/kintree/pkg/observability"
	"github.com/sbhuiyan/kintree/pkg/session"
	"github.com/sbhuiyan/kintree/pkg/tree"
)

// Portal API paths.
const (
	exportPath = "/api/family-tree/export"
	mePath     = "/api/me"
)

// DefaultCacheTTL is how long fetched documents stay cached.
const DefaultCacheTTL = 15 * time.Minute

// SessionSource provides the current portal session. Implemented by
// [session.CLIStore]; a fake suffices in tests.
type SessionSource interface {
	GetSession(ctx context.Context) (*session.Session, error)
	DeleteSession(ctx context.Context) error
}

// Client talks to the portal with caching and retry.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	sessions SessionSource
}

// NewClient creates a portal client. A nil cache disables caching; a nil
// keyer uses the default.
func NewClient(c cache.Cache, keyer cache.Keyer, sessions SessionSource) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Client{
		http:     NewHTTPClient(),
		cache:    c,
		keyer:    keyer,
		sessions: sessions,
	}
}

// NewHTTPClient creates the HTTP client used for portal requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// FetchDocument downloads the raw member export from the portal the
// current session is bound to. Responses are cached under the export URL;
// refresh bypasses the cache.
func (c *Client) FetchDocument(ctx context.Context, refresh bool) (tree.Document, error) {
	sess, err := c.requireSession(ctx)
	if err != nil {
		return tree.Document{}, err
	}

	endpoint := strings.TrimRight(sess.PortalURL, "/") + exportPath
	key := c.keyer.TreeKey(endpoint)

	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			var doc tree.Document
			if err := json.Unmarshal(data, &doc); err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return doc, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	var doc tree.Document
	fetch := func() error {
		return c.getJSON(ctx, endpoint, sess.Token, &doc)
	}
	if err := cache.RetryWithBackoff(ctx, fetch); err != nil {
		return tree.Document{}, err
	}

	if data, err := json.Marshal(doc); err == nil {
		_ = c.cache.Set(ctx, key, data, DefaultCacheTTL)
		observability.Cache().OnCacheSet(ctx, "tree", len(data))
	}
	return doc, nil
}

// Login validates a token against the portal's account endpoint and
// returns a session ready to store.
func (c *Client) Login(ctx context.Context, portalURL, token string) (*session.Session, error) {
	if err := kterrors.ValidateURL(portalURL); err != nil {
		return nil, err
	}

	var user session.User
	endpoint := strings.TrimRight(portalURL, "/") + mePath
	if err := c.getJSON(ctx, endpoint, token, &user); err != nil {
		if kterrors.GetCode(err) == kterrors.ErrCodeSessionExpired {
			return nil, kterrors.New(kterrors.ErrCodeUnauthorized, "portal rejected the token")
		}
		return nil, err
	}

	return session.New(token, portalURL, &user, session.DefaultTTL), nil
}

// requireSession loads the stored session or fails with UNAUTHORIZED.
func (c *Client) requireSession(ctx context.Context) (*session.Session, error) {
	sess, err := c.sessions.GetSession(ctx)
	if err != nil {
		return nil, kterrors.Wrap(kterrors.ErrCodeInternal, err, "loading session")
	}
	if sess == nil {
		return nil, kterrors.New(kterrors.ErrCodeUnauthorized, "not logged in (run: kintree login)")
	}
	return sess, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, endpoint, token string, v any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return kterrors.Wrap(kterrors.ErrCodeInvalidInput, err, "parsing URL %q", endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kterrors.Wrap(kterrors.ErrCodeInternal, err, "building request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	observability.HTTP().OnRequest(ctx, http.MethodGet, u.Host, u.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return kterrors.Wrap(kterrors.ErrCodeTimeout, err, "request canceled")
		}
		return cache.Retryable(kterrors.Wrap(kterrors.ErrCodeNetwork, err, "requesting %s", u.Host))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := c.checkStatus(ctx, resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return kterrors.Wrap(kterrors.ErrCodeInvalidFormat, err, "decoding portal response")
	}
	return nil
}

// checkStatus maps portal status codes to error codes. A 401 also clears
// the stored session so the next command prompts for login.
func (c *Client) checkStatus(ctx context.Context, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized:
		_ = c.sessions.DeleteSession(ctx)
		return kterrors.New(kterrors.ErrCodeSessionExpired, "portal session expired, log in again")
	case code == http.StatusNotFound:
		return kterrors.New(kterrors.ErrCodeNotFound, "portal endpoint not found")
	case code >= 500:
		return cache.Retryable(kterrors.New(kterrors.ErrCodeNetwork, "portal returned status %d", code))
	default:
		return kterrors.New(kterrors.ErrCodeNetwork, "portal returned status %d", code)
	}
}
