package recipe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchTranslatesTerm(t *testing.T) {
	var filterTerm string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filter.php":
			filterTerm = r.URL.Query().Get("i")
			w.Write([]byte(`{"meals":[{"idMeal":"52940"}]}`))
		case "/lookup.php":
			w.Write([]byte(`{"meals":[{"idMeal":"52940","strMeal":"Brown Stew Chicken","strMealThumb":"https://example.test/thumb.jpg","strIngredient1":"Chicken","strMeasure1":"1 whole"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	recipes, err := c.Search(context.Background(), "kip")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	// The translated term must reach the API, not the raw Dutch input.
	if filterTerm != "chicken" {
		t.Errorf("filter term = %q, want %q", filterTerm, "chicken")
	}

	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	if recipes[0].Name != "Brown Stew Chicken" {
		t.Errorf("name = %q", recipes[0].Name)
	}
	if recipes[0].Thumbnail != "https://example.test/thumb.jpg" {
		t.Errorf("thumbnail = %q", recipes[0].Thumbnail)
	}
}

func TestSearchUntranslatedTermPassesThrough(t *testing.T) {
	var filterTerm string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filterTerm = r.URL.Query().Get("i")
		w.Write([]byte(`{"meals":null}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	recipes, err := c.Search(context.Background(), "  Salmon ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if filterTerm != "salmon" {
		t.Errorf("filter term = %q, want normalized fallback %q", filterTerm, "salmon")
	}
	// null meals is a valid "no matches" result, not an error.
	if len(recipes) != 0 {
		t.Errorf("expected empty result, got %d recipes", len(recipes))
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	if _, err := c.Search(context.Background(), "kip"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestLookupMissingRequiredFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":[{"strMealThumb":"x"}]}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Lookup(context.Background(), "1")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestLookupEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":[]}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Lookup(context.Background(), "1")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestIngredientsSkipGaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Slots 1, 3 and 5 populated; 2 and 4 blank. Extraction must skip
		// the blanks without breaking early.
		w.Write([]byte(`{"meals":[{
			"idMeal":"1","strMeal":"Gaps",
			"strIngredient1":"Chicken","strMeasure1":"1",
			"strIngredient2":"","strMeasure2":"",
			"strIngredient3":"Rice","strMeasure3":"200g",
			"strIngredient4":null,"strMeasure4":null,
			"strIngredient5":"Onion","strMeasure5":""
		}]}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	rec, err := c.Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	got := rec.Ingredients()
	want := []Ingredient{
		{Name: "Chicken", Amount: "1"},
		{Name: "Rice", Amount: "200g"},
		{Name: "Onion", Amount: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d ingredients, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ingredient[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIngredientsTrimWhitespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":[{
			"idMeal":"1","strMeal":"Trim",
			"strIngredient1":" Chicken ","strMeasure1":" 1 whole "
		}]}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	rec, err := c.Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	got := rec.Ingredients()
	if len(got) != 1 || got[0].Name != "Chicken" || got[0].Amount != "1 whole" {
		t.Errorf("got %+v, want trimmed Chicken / 1 whole", got)
	}
}
