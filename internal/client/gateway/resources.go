package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/ozo/internal/client/models"
)

// Items lists items visible to the current session.
func (c *Client) Items(ctx context.Context, page models.Page) ([]models.Item, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(page.Skip))
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}

	items := []models.Item{}
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/items/", q), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// User fetches a profile by id.
func (c *Client) User(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/users/"+strconv.FormatInt(id, 10), nil), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Ping checks the server health endpoint, which lives at the server root
// rather than under the API prefix.
func (c *Client) Ping(ctx context.Context) error {
	var health struct {
		Status string `json:"status"`
	}
	return c.doJSON(ctx, http.MethodGet, c.root.JoinPath("health").String(), nil, &health)
}
