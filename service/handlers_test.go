package service

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/scrape"
	"github.com/platechange/platechange/storage"
	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
	"github.com/platechange/platechange/transform"
)

type fixedCorpus struct {
	recipes []*recipe.Recipe
}

func (f fixedCorpus) Recipes(ctx context.Context, style string) ([]*recipe.Recipe, error) {
	return f.recipes, nil
}

func newTestService(t *testing.T, corpus transform.CorpusSource) (*Service, *http.ServeMux) {
	t.Helper()
	tg := tagger.NewRuleTagger()
	tax := taxonomy.Default()
	engine := transform.NewEngine(tax, tg,
		transform.WithRand(rand.New(rand.NewSource(11))))
	fetcher := scrape.NewFetcher(5*time.Second, "platechange-test/1.0", 1<<20)

	svc := New(engine, corpus, fetcher, scrape.NewPageParser(), tg, tax, storage.NewMemoryStore(), nil)
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	return svc, mux
}

func inlineSource() *recipe.SourceData {
	return &recipe.SourceData{
		Name:         "Skillet Chicken",
		Ingredients:  []string{"2 pounds of chicken", "1 cup of rice"},
		Instructions: []string{"Cook the chicken in a skillet.", "Serve over rice."},
	}
}

func postTransform(t *testing.T, mux *http.ServeMux, req TransformRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/transform", bytes.NewReader(body)))
	return rr
}

func TestHandleTransform(t *testing.T) {
	_, mux := newTestService(t, nil)

	rr := postTransform(t, mux, TransformRequest{
		Source:         inlineSource(),
		Transformation: "to_vegetarian",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var rec storage.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "to_vegetarian", rec.Transformation)
	assert.Equal(t, "Skillet Chicken (vegetarian)", rec.Recipe.Name)
	assert.NotEmpty(t, rec.Changes)

	// The stored record is retrievable.
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recipes/"+rec.ID, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleTransformMethod(t *testing.T) {
	_, mux := newTestService(t, nil)

	rr := postTransform(t, mux, TransformRequest{
		Source: inlineSource(),
		Method: "fry",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var rec storage.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, "to_method", rec.Transformation)
	assert.Equal(t, "fry", rec.Method)
	assert.Equal(t, []string{"fry"}, rec.Recipe.CookingMethods)
}

func TestHandleTransformUnsupportedMethod(t *testing.T) {
	_, mux := newTestService(t, nil)

	rr := postTransform(t, mux, TransformRequest{
		Source: inlineSource(),
		Method: "sous-vide",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleTransformStyle(t *testing.T) {
	tg := tagger.NewRuleTagger()
	tax := taxonomy.Default()
	corpusRecipe, err := recipe.New(recipe.SourceData{
		Name:         "Tacos",
		Ingredients:  []string{"1 pound of chorizo"},
		Instructions: []string{"Cook the chorizo.", "Serve."},
	}, tg, tax)
	require.NoError(t, err)

	_, mux := newTestService(t, fixedCorpus{recipes: []*recipe.Recipe{corpusRecipe}})

	rr := postTransform(t, mux, TransformRequest{
		Source: inlineSource(),
		Style:  "mexican",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var rec storage.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, "to_style", rec.Transformation)
	assert.Equal(t, "mexican", rec.Style)
	assert.Equal(t, "Skillet Chicken (mexican)", rec.Recipe.Name)
}

func TestHandleTransformStyleUnconfigured(t *testing.T) {
	_, mux := newTestService(t, nil)

	rr := postTransform(t, mux, TransformRequest{
		Source: inlineSource(),
		Style:  "mexican",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Contains(t, envelope["error"], "not configured")
}

func TestHandleTransformSelectorValidation(t *testing.T) {
	_, mux := newTestService(t, nil)

	// No selector.
	rr := postTransform(t, mux, TransformRequest{Source: inlineSource()})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Two selectors.
	rr = postTransform(t, mux, TransformRequest{
		Source:         inlineSource(),
		Transformation: "to_vegan",
		Method:         "bake",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Unknown transformation name.
	rr = postTransform(t, mux, TransformRequest{
		Source:         inlineSource(),
		Transformation: "to_raw",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// No recipe input.
	rr = postTransform(t, mux, TransformRequest{Transformation: "to_vegan"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleTransformRejectsGet(t *testing.T) {
	_, mux := newTestService(t, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/transform", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleListRecipes(t *testing.T) {
	_, mux := newTestService(t, nil)

	rr := postTransform(t, mux, TransformRequest{
		Source:         inlineSource(),
		Transformation: "to_easy",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recipes", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var records []*storage.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	assert.Len(t, records, 1)
}

func TestHandleGetRecipeNotFound(t *testing.T) {
	_, mux := newTestService(t, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recipes/no-such-id", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleHealthz(t *testing.T) {
	_, mux := newTestService(t, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
