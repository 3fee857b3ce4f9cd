package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rvanes/boodschappen/internal/translate"
)

const defaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// maxIngredientSlots is the number of positionally-numbered ingredient
// fields a meal record exposes (strIngredient1..20). The convention is
// dictated by the external API.
const maxIngredientSlots = 20

// ErrMalformedResponse marks a recipe API payload missing required fields.
var ErrMalformedResponse = errors.New("malformed recipe response")

// Ingredient is one name/amount pair from a recipe.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Recipe is a full meal record from the lookup endpoint.
type Recipe struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`

	slots [maxIngredientSlots]Ingredient
}

// UnmarshalJSON reads the API's flat record with its numbered
// strIngredientN/strMeasureN fields. idMeal and strMeal are required.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	str := func(key string) string {
		if v, ok := raw[key].(string); ok {
			return v
		}
		return ""
	}

	r.ID = str("idMeal")
	r.Name = str("strMeal")
	r.Thumbnail = str("strMealThumb")
	if r.ID == "" || r.Name == "" {
		return fmt.Errorf("%w: missing idMeal or strMeal", ErrMalformedResponse)
	}

	for i := 1; i <= maxIngredientSlots; i++ {
		r.slots[i-1] = Ingredient{
			Name:   strings.TrimSpace(str(fmt.Sprintf("strIngredient%d", i))),
			Amount: strings.TrimSpace(str(fmt.Sprintf("strMeasure%d", i))),
		}
	}
	return nil
}

// MarshalJSON emits the normalized record, ingredients already densified.
func (r Recipe) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string       `json:"id"`
		Name        string       `json:"name"`
		Thumbnail   string       `json:"thumbnail"`
		Ingredients []Ingredient `json:"ingredients"`
	}{r.ID, r.Name, r.Thumbnail, r.Ingredients()})
}

// Ingredients returns the dense ordered ingredient list. Slots with an empty
// name are skipped rather than treated as the end: some upstream records
// have gaps in the numbering.
func (r *Recipe) Ingredients() []Ingredient {
	var out []Ingredient
	for _, slot := range r.slots {
		if slot.Name == "" {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// Client queries TheMealDB's two read-only endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.baseURL = u
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// filterMatch is the minimal stub the filter endpoint returns per meal.
type filterMatch struct {
	IDMeal string `json:"idMeal"`
}

// Search translates the household-language term, filters meals by that
// ingredient, and looks up the full record for each match. An empty result
// is not an error.
func (c *Client) Search(ctx context.Context, term string) ([]Recipe, error) {
	term = translate.Term(term)
	if term == "" {
		return []Recipe{}, nil
	}

	var filtered struct {
		Meals []filterMatch `json:"meals"`
	}
	if err := c.get(ctx, "/filter.php?i="+url.QueryEscape(term), &filtered); err != nil {
		return nil, fmt.Errorf("filter by ingredient %q: %w", term, err)
	}

	recipes := make([]Recipe, 0, len(filtered.Meals))
	for _, match := range filtered.Meals {
		if match.IDMeal == "" {
			return nil, fmt.Errorf("%w: filter match without idMeal", ErrMalformedResponse)
		}
		rec, err := c.Lookup(ctx, match.IDMeal)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	return recipes, nil
}

// Lookup fetches the full record for one meal id.
func (c *Client) Lookup(ctx context.Context, id string) (*Recipe, error) {
	var result struct {
		Meals []Recipe `json:"meals"`
	}
	if err := c.get(ctx, "/lookup.php?i="+url.QueryEscape(id), &result); err != nil {
		return nil, fmt.Errorf("lookup meal %s: %w", id, err)
	}
	if len(result.Meals) == 0 {
		return nil, fmt.Errorf("lookup meal %s: %w: empty result", id, ErrMalformedResponse)
	}
	return &result.Meals[0], nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recipe API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recipe API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode recipe response: %w", err)
	}
	return nil
}
