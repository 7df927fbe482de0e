package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/DKS2424/Travel/internal/api"
	"github.com/DKS2424/Travel/internal/domain"
)

const treksPath = "/rest/v1/treks"

func trekPath(id uuid.UUID) string {
	return treksPath + "/" + id.String()
}

// Select lists every trek in the given order.
func (c *Client) Select(ctx context.Context, order domain.TrekOrder) ([]domain.Trek, error) {
	var rows []api.Trek
	q := url.Values{"order": {order.String()}}
	if err := c.do(ctx, request{method: http.MethodGet, path: treksPath, query: q}, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.Trek, len(rows))
	for i, r := range rows {
		out[i] = r.ToDomain()
	}
	return out, nil
}

// Get returns one trek by id.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (domain.Trek, error) {
	var row api.Trek
	if err := c.do(ctx, request{method: http.MethodGet, path: trekPath(id)}, &row); err != nil {
		return domain.Trek{}, err
	}
	return row.ToDomain(), nil
}

// Insert creates a trek and returns the stored record. Requires an admin session.
func (c *Client) Insert(ctx context.Context, trek domain.NewTrek) (domain.Trek, error) {
	var row api.Trek
	body := api.NewTrekFromDomain(trek)
	if err := c.do(ctx, request{method: http.MethodPost, path: treksPath, body: body, auth: true}, &row); err != nil {
		return domain.Trek{}, err
	}
	return row.ToDomain(), nil
}

// Update applies patch to trek id and returns the stored record.
// Requires an admin session.
func (c *Client) Update(ctx context.Context, id uuid.UUID, patch domain.TrekPatch) (domain.Trek, error) {
	var row api.Trek
	body := api.TrekPatchFromDomain(patch)
	if err := c.do(ctx, request{method: http.MethodPatch, path: trekPath(id), body: body, auth: true}, &row); err != nil {
		return domain.Trek{}, err
	}
	return row.ToDomain(), nil
}

// Delete removes trek id. Requires an admin session.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: trekPath(id), auth: true}, nil)
}
