// Package spoonacular is a thin client for the Spoonacular recipe and meal
// planner API. Every call is a synchronous round trip authenticated with the
// static API key; shopping-list calls additionally carry the per-user
// username/hash pair issued at registration.
package spoonacular

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

	"github.com/fridgeraiders/backend/internal/logger"
)

const defaultBaseURL = "https://api.spoonacular.com"

// APIError reports a non-success response or an undecodable payload from
// the external API. Handlers treat it as recoverable and tell the user.
type APIError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("spoonacular: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("spoonacular: %s returned status %d", e.Path, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client talks to the Spoonacular API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host. Tests use this to
// target an httptest server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// New creates a client with a request timeout; a hung external call must not
// hold a request handler forever.
func New(apiKey string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ComplexSearch runs a general recipe search. The query string comes
// prebuilt from BuildQuery.
func (c *Client) ComplexSearch(ctx context.Context, query string) ([]Recipe, error) {
	var resp complexSearchResponse
	if err := c.do(ctx, http.MethodGet, "/recipes/complexSearch", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// FindByIngredients searches by what is in the fridge. Pantry staples are
// always ignored, matching the original behaviour.
func (c *Client) FindByIngredients(ctx context.Context, query string) ([]Recipe, error) {
	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/findByIngredients", query+"&ignorePantry=true", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecipeInformation fetches the full detail for one recipe.
func (c *Client) RecipeInformation(ctx context.Context, recipeID int64) (*RecipeInfo, error) {
	var info RecipeInfo
	path := fmt.Sprintf("/recipes/%d/information", recipeID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SimilarRecipes lists recipes similar to the given one.
func (c *Client) SimilarRecipes(ctx context.Context, recipeID int64) ([]Recipe, error) {
	var recipes []Recipe
	path := fmt.Sprintf("/recipes/%d/similar", recipeID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// IngredientSubstitutes lists substitutes for an ingredient.
func (c *Client) IngredientSubstitutes(ctx context.Context, ingredientID int64) (*Substitutes, error) {
	var subs Substitutes
	path := fmt.Sprintf("/food/ingredients/%d/substitutes", ingredientID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &subs); err != nil {
		return nil, err
	}
	return &subs, nil
}

// ConnectUser registers a user with the meal planner and returns the
// credential pair for later shopping-list calls.
func (c *Client) ConnectUser(ctx context.Context, req ConnectUserRequest) (*Credentials, error) {
	var resp connectUserResponse
	if err := c.do(ctx, http.MethodPost, "/users/connect", "", req, &resp); err != nil {
		return nil, err
	}
	if resp.Username == "" || resp.Hash == "" {
		return nil, &APIError{Path: "/users/connect", Err: fmt.Errorf("incomplete credentials in response")}
	}
	return &Credentials{Username: resp.Username, Hash: resp.Hash}, nil
}

// ShoppingList fetches the user's shopping list grouped by aisle.
func (c *Client) ShoppingList(ctx context.Context, creds Credentials) ([]Aisle, error) {
	var resp shoppingListResponse
	path := fmt.Sprintf("/mealplanner/%s/shopping-list", url.PathEscape(creds.Username))
	if err := c.do(ctx, http.MethodGet, path, credsQuery(creds), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Aisles, nil
}

// AddShoppingListItem adds one item; parse lets the API split quantity and
// aisle out of free text.
func (c *Client) AddShoppingListItem(ctx context.Context, creds Credentials, item string, parse bool) error {
	path := fmt.Sprintf("/mealplanner/%s/shopping-list/items", url.PathEscape(creds.Username))
	return c.do(ctx, http.MethodPost, path, credsQuery(creds), addItemRequest{Item: item, Parse: parse}, nil)
}

// DeleteShoppingListItem removes one item by id.
func (c *Client) DeleteShoppingListItem(ctx context.Context, creds Credentials, itemID int64) error {
	path := fmt.Sprintf("/mealplanner/%s/shopping-list/items/%d", url.PathEscape(creds.Username), itemID)
	return c.do(ctx, http.MethodDelete, path, credsQuery(creds), nil, nil)
}

func credsQuery(creds Credentials) string {
	return "username=" + url.QueryEscape(creds.Username) + "&hash=" + url.QueryEscape(creds.Hash)
}

// do performs one API round trip. The prebuilt query keeps the original
// comma-list format; only spaces need escaping to form a valid request line.
// The API key is always appended last.
func (c *Client) do(ctx context.Context, method, path, query string, body, out interface{}) error {
	q := strings.ReplaceAll(query, " ", "%20")
	if q != "" {
		q += "&"
	}
	q += "apiKey=" + url.QueryEscape(c.apiKey)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+q, reader)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.log.Warn("spoonacular call failed",
			"path", path,
			"status", strconv.Itoa(resp.StatusCode),
		)
		return &APIError{Path: path, StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
		}
	} else {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	}

	return nil
}
