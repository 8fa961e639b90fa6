// Package transform implements the named recipe transformations: diet
// direction, cuisine style, cooking method, and simplification. Transforms
// mutate a Recipe in place through the substitution primitive; most tag the
// recipe name with a suffix naming the transformation. They are
// order-sensitive operations a caller chooses explicitly, not a composable
// pipeline.
package transform

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
)

// Transformation names one supported recipe rewrite. The set is closed;
// Apply rejects anything else.
type Transformation string

// Supported transformations.
const (
	ToVegetarian    Transformation = "to_vegetarian"
	FromVegetarian  Transformation = "from_vegetarian"
	ToVegan         Transformation = "to_vegan"
	FromVegan       Transformation = "from_vegan"
	ToPescatarian   Transformation = "to_pescatarian"
	FromPescatarian Transformation = "from_pescatarian"
	ToHealthy       Transformation = "to_healthy"
	FromHealthy     Transformation = "from_healthy"
	ToEasy          Transformation = "to_easy"
)

// Transformations lists the closed set in a stable order.
func Transformations() []Transformation {
	return []Transformation{
		ToVegetarian, FromVegetarian,
		ToVegan, FromVegan,
		ToPescatarian, FromPescatarian,
		ToHealthy, FromHealthy,
		ToEasy,
	}
}

// ParseTransformation validates a transformation name.
func ParseTransformation(s string) (Transformation, error) {
	for _, t := range Transformations() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transformation: %q", s)
}

// ErrUnsupportedMethod is returned by ToMethod for method values outside the
// supported set. The recipe is left unmutated.
var ErrUnsupportedMethod = fmt.Errorf("unsupported cooking method")

// Engine applies transformations against a fixed, fully populated taxonomy.
// Randomized substitute choices draw from an injectable rand source so tests
// can pin outcomes.
type Engine struct {
	tax    *taxonomy.Taxonomy
	tg     tagger.Tagger
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the randomness source used for substitute selection.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates a transformation engine. The taxonomy must be fully
// populated before any recipe is transformed; a partial taxonomy produces
// silently wrong typings, not errors.
func NewEngine(tax *taxonomy.Taxonomy, tg tagger.Tagger, opts ...Option) *Engine {
	e := &Engine{
		tax:    tax,
		tg:     tg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply runs one named transformation against the recipe. Unknown values
// are rejected without touching the recipe.
func (e *Engine) Apply(r *recipe.Recipe, t Transformation) error {
	switch t {
	case ToVegetarian:
		e.toVegetarian(r)
	case FromVegetarian:
		e.fromVegetarian(r)
	case ToVegan:
		e.toVegan(r)
	case FromVegan:
		e.fromVegan(r)
	case ToPescatarian:
		e.toPescatarian(r)
	case FromPescatarian:
		e.fromPescatarian(r)
	case ToHealthy:
		e.toHealthy(r)
	case FromHealthy:
		e.fromHealthy(r)
	case ToEasy:
		e.toEasy(r)
	default:
		return fmt.Errorf("unknown transformation: %q", t)
	}
	r.UpdateInstructions()
	return nil
}

// parse builds an Ingredient from a substitute phrase using the engine's
// tagger and taxonomy.
func (e *Engine) parse(phrase string) recipe.Ingredient {
	return recipe.ParseIngredient(phrase, e.tg, e.tax)
}

// choose picks one entry uniformly at random.
func (e *Engine) choose(candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[e.rng.Intn(len(candidates))], true
}
