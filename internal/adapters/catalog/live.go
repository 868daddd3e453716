package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kollega-game/kollega/internal/domain/model"
	"github.com/kollega-game/kollega/pkg/logger"
)

// Default HTTP provider configuration constants.
const (
	defaultPageSize    = 50 // the directory caps list responses at 50
	defaultHTTPTimeout = 15 * time.Second
	maxPages           = 20 // hard stop against a runaway pagination loop
)

// HTTPOption applies a configuration option to the HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		if c != nil {
			p.client = c
		}
	}
}

// HTTPProvider fetches the roster from the people directory: a paged list
// of users, then one detail request per active user, mapped through the
// typed wire shapes in mapper.go.
type HTTPProvider struct {
	baseURL string
	token   string
	client  *http.Client
	log     logger.Logger
}

// NewHTTPProvider builds a provider for the directory at baseURL using the
// given bearer token.
func NewHTTPProvider(baseURL, token string, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")),
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		log:     logger.Named("catalog"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ListEmployees implements Provider. The date fixes the reference point for
// age mapping so the roster's numeric attribute is stable all day.
func (p *HTTPProvider) ListEmployees(ctx context.Context, date time.Time) ([]model.Employee, error) {
	ids, err := p.activeUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	employees := make([]model.Employee, 0, len(ids))
	for _, id := range ids {
		user, err := p.userDetail(ctx, id)
		if err != nil {
			if err == ErrUnauthorized || ctx.Err() != nil {
				return nil, err
			}
			// A single broken record should not take the whole roster down.
			p.log.Warn(ctx, "skipping employee detail", logger.String("id", id), logger.Error(err))
			continue
		}
		employees = append(employees, mapUser(user, date))
	}
	return employees, nil
}

// activeUserIDs pages through the list endpoint and keeps active users.
func (p *HTTPProvider) activeUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for page := 0; page < maxPages; page++ {
		url := fmt.Sprintf("%s/users?limit=%d&offset=%d&orderBy=name&orderDirection=asc",
			p.baseURL, defaultPageSize, page*defaultPageSize)

		var resp apiListResponse
		if err := p.getJSON(ctx, url, &resp); err != nil {
			return nil, err
		}
		for _, item := range resp.Items {
			if item.Status != nil && !item.Status.Active {
				continue
			}
			ids = append(ids, item.ID)
		}
		if (page+1)*defaultPageSize >= resp.Total || len(resp.Items) == 0 {
			break
		}
	}
	return ids, nil
}

func (p *HTTPProvider) userDetail(ctx context.Context, id string) (apiUser, error) {
	var user apiUser
	err := p.getJSON(ctx, p.baseURL+"/users/"+id, &user)
	return user, err
}

func (p *HTTPProvider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	return nil
}
