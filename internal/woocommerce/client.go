package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// PerPage is the page size for every upstream listing call.
const PerPage = 100

// Client talks to the commerce platform REST API using consumer key/secret
// authentication. The timeout is generous because bulk catalog writes are
// slow on the upstream side.
type Client struct {
	baseURL    string
	key        string
	secret     string
	httpClient *http.Client
	log        *logrus.Entry
}

func NewClient(baseURL, key, secret string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		key:     key,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
		log: log.WithField("component", "wc-client"),
	}
}

// APIError carries the upstream status and body so per-item results can
// pass the upstream message through unchanged.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d - %s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.key, c.secret)
	req.Header.Set("Content-Type", "application/json")
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{
		"page":     []string{strconv.Itoa(page)},
		"per_page": []string{strconv.Itoa(PerPage)},
	}
}

// Products returns one page of products as raw JSON for the GET proxy.
func (c *Client) Products(ctx context.Context, page int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "products", pageQuery(page), nil)
}

func (c *Client) Tags(ctx context.Context, page int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "products/tags", pageQuery(page), nil)
}

func (c *Client) Categories(ctx context.Context, page int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "products/categories", pageQuery(page), nil)
}

func (c *Client) AttributesRaw(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "products/attributes", nil, nil)
}

// Attributes returns the upstream attribute registry used for slug
// resolution and option validation.
func (c *Client) Attributes(ctx context.Context) ([]Attribute, error) {
	raw, err := c.AttributesRaw(ctx)
	if err != nil {
		return nil, err
	}
	var attrs []Attribute
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}
	return attrs, nil
}

func (c *Client) AttributeTermsRaw(ctx context.Context, attributeID int64, page int) (json.RawMessage, error) {
	path := fmt.Sprintf("products/attributes/%d/terms", attributeID)
	return c.do(ctx, http.MethodGet, path, pageQuery(page), nil)
}

func (c *Client) AttributeTerms(ctx context.Context, attributeID int64) ([]AttributeTerm, error) {
	raw, err := c.AttributeTermsRaw(ctx, attributeID, 1)
	if err != nil {
		return nil, err
	}
	var terms []AttributeTerm
	if err := json.Unmarshal(raw, &terms); err != nil {
		return nil, fmt.Errorf("failed to decode attribute terms: %w", err)
	}
	return terms, nil
}

// ProductIDBySKU resolves a SKU to the upstream product ID; 0 means the
// SKU is unknown.
func (c *Client) ProductIDBySKU(ctx context.Context, sku string) (int64, error) {
	query := url.Values{"sku": []string{sku}}
	raw, err := c.do(ctx, http.MethodGet, "products", query, nil)
	if err != nil {
		return 0, err
	}
	var products []Entity
	if err := json.Unmarshal(raw, &products); err != nil {
		return 0, fmt.Errorf("failed to decode product lookup: %w", err)
	}
	if len(products) == 0 {
		return 0, nil
	}
	return products[0].ID, nil
}

// Product fetches one product with its attribute assignments.
func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("products/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &p, nil
}

func (c *Client) Variations(ctx context.Context, productID int64, page int) (json.RawMessage, error) {
	path := fmt.Sprintf("products/%d/variations", productID)
	return c.do(ctx, http.MethodGet, path, pageQuery(page), nil)
}

func (c *Client) create(ctx context.Context, path string, item interface{}) (*Entity, error) {
	raw, err := c.do(ctx, http.MethodPost, path, nil, item)
	if err != nil {
		return nil, err
	}
	var e Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}
	return &e, nil
}

func (c *Client) update(ctx context.Context, path string, item interface{}) (*Entity, error) {
	raw, err := c.do(ctx, http.MethodPut, path, nil, item)
	if err != nil {
		return nil, err
	}
	var e Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("failed to decode update response: %w", err)
	}
	return &e, nil
}

func (c *Client) CreateProduct(ctx context.Context, item interface{}) (*Entity, error) {
	return c.create(ctx, "products", item)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, item interface{}) (*Entity, error) {
	return c.update(ctx, fmt.Sprintf("products/%d", id), item)
}

func (c *Client) CreateVariation(ctx context.Context, productID int64, item interface{}) (*Entity, error) {
	return c.create(ctx, fmt.Sprintf("products/%d/variations", productID), item)
}

func (c *Client) UpdateVariation(ctx context.Context, productID, variationID int64, item interface{}) (*Entity, error) {
	return c.update(ctx, fmt.Sprintf("products/%d/variations/%d", productID, variationID), item)
}

func (c *Client) CreateAttribute(ctx context.Context, item interface{}) (*Entity, error) {
	return c.create(ctx, "products/attributes", item)
}

func (c *Client) UpdateAttribute(ctx context.Context, id int64, item interface{}) (*Entity, error) {
	return c.update(ctx, fmt.Sprintf("products/attributes/%d", id), item)
}
