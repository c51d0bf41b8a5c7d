package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/plissemesh/production-backend/pkg/config"
	"github.com/plissemesh/production-backend/pkg/enums"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
	"github.com/plissemesh/production-backend/pkg/logger"
)

const accessTokenHeader = "X-Shopify-Access-Token"

var errLoggerRequired = errors.New("shopify logger is required")

// Client wraps the Shopify Admin REST API for every regional storefront.
// Credentials are resolved per store key from configuration.
type Client struct {
	cfg    config.ShopifyConfig
	http   *http.Client
	logger *logger.Logger
}

// NewClient validates the configuration and builds the REST wrapper.
func NewClient(cfg config.ShopifyConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		return nil, errors.New("shopify api version is required")
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logg,
	}, nil
}

// OrdersUpdatedSince fetches every order whose updated_at is at or after the
// watermark, following Link-header pagination until the last page.
func (c *Client) OrdersUpdatedSince(ctx context.Context, store enums.StoreKey, since time.Time) ([]OrderPayload, error) {
	domain, token, err := c.cfg.Credentials(store.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve credentials")
	}

	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	query := url.Values{}
	query.Set("status", "any")
	query.Set("limit", fmt.Sprintf("%d", pageSize))
	if !since.IsZero() {
		query.Set("updated_at_min", since.UTC().Format(time.RFC3339))
	}

	requestURL := fmt.Sprintf("https://%s/admin/api/%s/orders.json?%s", domain, c.cfg.APIVersion, query.Encode())

	var all []OrderPayload
	for requestURL != "" {
		orders, next, err := c.fetchOrdersPage(ctx, requestURL, token)
		if err != nil {
			return nil, err
		}
		all = append(all, orders...)
		requestURL = next
	}
	return all, nil
}

func (c *Client) fetchOrdersPage(ctx context.Context, requestURL, token string) ([]OrderPayload, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set(accessTokenHeader, token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "shopify request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("shopify returned status %d", resp.StatusCode))
	}

	var envelope ordersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode orders")
	}
	return envelope.Orders, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" target from a Shopify Link header.
// Returns empty when there is no further page.
func nextPageURL(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		if !strings.Contains(segments[1], `rel="next"`) {
			continue
		}
		target := strings.TrimSpace(segments[0])
		target = strings.TrimPrefix(target, "<")
		target = strings.TrimSuffix(target, ">")
		return target
	}
	return ""
}
