// Package lookup implements the remote lookup client over plain HTTP. Each
// call is bounded by a per-call timeout and classified as found, not found
// or unreachable; the client never retries.
package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/microshop-io/microshop/internal/core/domain"
)

// Capability names one remote operation, abstracted from its transport.
type Capability string

const (
	CapabilityUserLookup    Capability = "user-lookup"
	CapabilityStockCheck    Capability = "stock-check"
	CapabilityProductLookup Capability = "product-lookup"
)

const defaultTimeout = 2 * time.Second

// Endpoints holds the base URLs of the peer services backing each
// capability.
type Endpoints struct {
	UserServiceURL      string
	InventoryServiceURL string
	ProductServiceURL   string
}

type Client struct {
	http      *http.Client
	endpoints Endpoints
	timeout   time.Duration
	log       zerolog.Logger
}

// NewClient builds a lookup client sharing one transport across calls. The
// underlying http.Client carries no timeout of its own; every call is
// bounded by the per-call context instead.
func NewClient(endpoints Endpoints, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		endpoints: endpoints,
		timeout:   timeout,
		log:       log,
	}
}

func (c *Client) LookupUser(ctx context.Context, id string) domain.BuyerOutcome {
	var user domain.UserSummary
	url := fmt.Sprintf("%s/api/users/%s", c.endpoints.UserServiceURL, id)
	status, err := c.get(ctx, CapabilityUserLookup, url, &user)
	return domain.BuyerOutcome{UserID: id, Status: status, User: user, Cause: err}
}

func (c *Client) CheckStock(ctx context.Context, productID string) domain.StockOutcome {
	var inStock bool
	url := fmt.Sprintf("%s/api/inventory/product/%s/in-stock", c.endpoints.InventoryServiceURL, productID)
	status, err := c.get(ctx, CapabilityStockCheck, url, &inStock)
	return domain.StockOutcome{ProductID: productID, Status: status, InStock: inStock, Cause: err}
}

func (c *Client) LookupProduct(ctx context.Context, id string) domain.ProductOutcome {
	var product domain.ProductSummary
	url := fmt.Sprintf("%s/api/products/%s", c.endpoints.ProductServiceURL, id)
	status, err := c.get(ctx, CapabilityProductLookup, url, &product)
	return domain.ProductOutcome{ProductID: id, Status: status, Product: product, Cause: err}
}

var jsonNull = []byte("null")

// get performs one GET against a capability endpoint. 404 and JSON null
// bodies classify as not found; transport errors, timeouts and unexpected
// statuses classify as unreachable. The returned error is the unreachable
// cause and is nil otherwise.
func (c *Client) get(ctx context.Context, capability Capability, url string, out any) (domain.LookupStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.LookupUnreachable, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("capability", string(capability)).Err(err).Msg("remote call failed")
		return domain.LookupUnreachable, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.LookupNotFound, nil
	case resp.StatusCode != http.StatusOK:
		err := fmt.Errorf("%s returned status %s", capability, resp.Status)
		c.log.Warn().Str("capability", string(capability)).Err(err).Msg("remote call failed")
		return domain.LookupUnreachable, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.LookupUnreachable, fmt.Errorf("read %s response: %w", capability, err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return domain.LookupNotFound, nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return domain.LookupUnreachable, fmt.Errorf("decode %s response: %w", capability, err)
	}
	return domain.LookupFound, nil
}
