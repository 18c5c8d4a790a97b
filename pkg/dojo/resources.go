package dojo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/jsonutil"
)

// Product is a top-level asset on the server.
type Product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Engagement is one assessment cycle under a product.
type Engagement struct {
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	Product int    `json:"product"`
}

// Label returns the display name, synthesizing one when the server has none.
func (e Engagement) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return "Engagement " + strconv.Itoa(e.ID)
}

// Test is one scan run under an engagement.
type Test struct {
	ID         int    `json:"id"`
	Title      string `json:"title,omitempty"`
	Engagement int    `json:"engagement"`
}

// Label returns the display title, falling back to a generic one.
func (t Test) Label() string {
	title := t.Title
	if title == "" {
		title = "Test"
	}
	return strconv.Itoa(t.ID) + ": " + title
}

// decodeList accepts either a paginated `{"results": [...]}` envelope or a
// bare array; DefectDojo deployments have been seen to serve both.
func decodeList[T any](data []byte) ([]T, error) {
	var env struct {
		Results []T `json:"results"`
	}
	if err := jsonutil.Unmarshal(data, &env); err == nil && env.Results != nil {
		return env.Results, nil
	}
	var bare []T
	if err := jsonutil.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

// ListProducts lists products, optionally filtered by name. The name filter
// is passed server-side and re-applied client-side as a case-insensitive
// contains match, in case the server ignores the parameter.
func (c *Client) ListProducts(ctx context.Context, nameQuery string) ([]Product, error) {
	query := url.Values{"limit": {strconv.Itoa(defaults.ListLimit)}}
	if nameQuery != "" {
		query.Set("name", nameQuery)
	}
	data, err := c.getBytes(ctx, defaults.PathProducts, query)
	if err != nil {
		return nil, err
	}
	products, err := decodeList[Product](data)
	if err != nil {
		return nil, err
	}
	if nameQuery == "" {
		return products, nil
	}
	needle := strings.ToLower(nameQuery)
	filtered := products[:0]
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// CreateProduct creates a product with the given name.
func (c *Client) CreateProduct(ctx context.Context, name string) (Product, error) {
	var p Product
	err := c.postJSON(ctx, defaults.PathProducts, map[string]any{"name": name}, &p)
	return p, err
}

// ListEngagements lists the engagements under a product.
func (c *Client) ListEngagements(ctx context.Context, productID int) ([]Engagement, error) {
	query := url.Values{
		"product": {strconv.Itoa(productID)},
		"limit":   {strconv.Itoa(defaults.ListLimit)},
	}
	data, err := c.getBytes(ctx, defaults.PathEngagements, query)
	if err != nil {
		return nil, err
	}
	return decodeList[Engagement](data)
}

// CreateEngagement creates an engagement under a product. Dates are
// YYYY-MM-DD; engagementType is e.g. "CI/CD" or "Interactive".
func (c *Client) CreateEngagement(ctx context.Context, productID int, name, startDate, endDate, engagementType string) (Engagement, error) {
	payload := map[string]any{
		"product":         productID,
		"name":            name,
		"target_start":    startDate,
		"target_end":      endDate,
		"engagement_type": engagementType,
		"status":          defaults.EngagementStatus,
	}
	var e Engagement
	err := c.postJSON(ctx, defaults.PathEngagements, payload, &e)
	return e, err
}

// ListTests lists the tests under an engagement.
func (c *Client) ListTests(ctx context.Context, engagementID int) ([]Test, error) {
	query := url.Values{
		"engagement": {strconv.Itoa(engagementID)},
		"limit":      {strconv.Itoa(defaults.ListLimit)},
	}
	data, err := c.getBytes(ctx, defaults.PathTests, query)
	if err != nil {
		return nil, err
	}
	return decodeList[Test](data)
}

// CreateTest creates a test explicitly, for callers that do not want
// import-scan to create it.
func (c *Client) CreateTest(ctx context.Context, engagementID, testTypeID int, title, startDate, endDate string) (Test, error) {
	payload := map[string]any{
		"engagement":   engagementID,
		"test_type":    testTypeID,
		"title":        title,
		"target_start": startDate,
		"target_end":   endDate,
	}
	var t Test
	err := c.postJSON(ctx, defaults.PathTests, payload, &t)
	return t, err
}
