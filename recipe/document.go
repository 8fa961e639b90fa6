package recipe

import (
	"fmt"
	"strings"

	"github.com/platechange/platechange/taxonomy"
)

// Document is the serialization contract for one recipe. Steps omit the raw
// token list, and steps whose text is empty are excluded.
type Document struct {
	Name           string          `json:"name"`
	CookingTools   []string        `json:"cooking tools"`
	CookingMethods []string        `json:"cooking method"`
	Ingredients    []IngredientDoc `json:"ingredients"`
	Steps          []StepDoc       `json:"steps"`
}

// IngredientDoc mirrors Ingredient's fields for serialization.
type IngredientDoc struct {
	Name        string              `json:"name"`
	Quantity    float64             `json:"quantity"`
	Measurement string              `json:"measurement"`
	Descriptor  []string            `json:"descriptor"`
	Preparation []string            `json:"preparation"`
	Type        taxonomy.DomainType `json:"type"`
}

// StepDoc mirrors Instruction's fields for serialization.
type StepDoc struct {
	Instruction string   `json:"instruction"`
	Tools       []string `json:"tools"`
	Methods     []string `json:"methods"`
	Time        int      `json:"time"`
	Ingredients []string `json:"ingredients"`
}

// Document builds the output document for the recipe's current state,
// refreshing the derived ingredient reference sets first.
func (r *Recipe) Document() Document {
	r.UpdateInstructions()

	doc := Document{
		Name:           r.Name,
		CookingTools:   r.CookingTools,
		CookingMethods: r.CookingMethods,
	}
	for _, ing := range r.Ingredients {
		doc.Ingredients = append(doc.Ingredients, IngredientDoc{
			Name:        ing.Name,
			Quantity:    ing.Quantity,
			Measurement: ing.Measurement,
			Descriptor:  ing.Descriptor,
			Preparation: ing.Preparation,
			Type:        ing.Type,
		})
	}
	for _, in := range r.Instructions {
		if len(in.Text) == 0 {
			continue
		}
		doc.Steps = append(doc.Steps, StepDoc{
			Instruction: in.Text,
			Tools:       in.Tools,
			Methods:     in.Methods,
			Time:        in.Minutes,
			Ingredients: in.Ingredients,
		})
	}
	return doc
}

// ChangeKind distinguishes modified entries from appended ones.
type ChangeKind string

// Change kinds for the diff report.
const (
	ChangeModified ChangeKind = "modified"
	ChangeAdded    ChangeKind = "added"
)

// Change is one entry of the diff report comparing the current recipe
// against its pristine snapshot, by positional index.
type Change struct {
	Section string     `json:"section"` // "ingredient" or "instruction"
	Kind    ChangeKind `json:"kind"`
	Index   int        `json:"index"`
	From    string     `json:"from,omitempty"`
	To      string     `json:"to"`
}

// Changes compares current ingredients and instructions against the pristine
// snapshot by positional index. Positions beyond the original length are
// reported as additions.
func (r *Recipe) Changes() []Change {
	if r.original == nil {
		return nil
	}

	var changes []Change
	orig := r.original
	for i := 0; i < len(r.Ingredients); i++ {
		if i >= len(orig.Ingredients) {
			changes = append(changes, Change{
				Section: "ingredient", Kind: ChangeAdded, Index: i,
				To: r.Ingredients[i].Name,
			})
			continue
		}
		if orig.Ingredients[i].Name != r.Ingredients[i].Name {
			changes = append(changes, Change{
				Section: "ingredient", Kind: ChangeModified, Index: i,
				From: orig.Ingredients[i].Name, To: r.Ingredients[i].Name,
			})
		}
	}
	for i := 0; i < len(r.Instructions); i++ {
		if i >= len(orig.Instructions) {
			changes = append(changes, Change{
				Section: "instruction", Kind: ChangeAdded, Index: i,
				To: r.Instructions[i].Text,
			})
			continue
		}
		if orig.Instructions[i].Text != r.Instructions[i].Text {
			changes = append(changes, Change{
				Section: "instruction", Kind: ChangeModified, Index: i,
				From: orig.Instructions[i].Text, To: r.Instructions[i].Text,
			})
		}
	}
	return changes
}

// ChangeReport renders the diff report as human-readable text.
func (r *Recipe) ChangeReport() string {
	changes := r.Changes()
	if len(changes) == 0 {
		return "No changes were made to the original recipe.\n"
	}

	var b strings.Builder
	b.WriteString("The following changes were made to the original recipe:\n")
	for _, c := range changes {
		switch c.Kind {
		case ChangeAdded:
			fmt.Fprintf(&b, "* added %s\n", c.To)
		default:
			fmt.Fprintf(&b, "* %s ---> %s\n", c.From, c.To)
		}
	}
	return b.String()
}

// Pretty renders a human-friendly version of the recipe.
func (r *Recipe) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nIngredients:\n", r.Name)
	for _, ing := range r.Ingredients {
		b.WriteString("  ")
		if ing.Quantity != 0 {
			fmt.Fprintf(&b, "%s ", formatQuantity(ing.Quantity))
		}
		if ing.Measurement != "" {
			fmt.Fprintf(&b, "%s ", ing.Measurement)
		}
		if len(ing.Descriptor) > 0 {
			fmt.Fprintf(&b, "%s ", strings.Join(ing.Descriptor, " "))
		}
		b.WriteString(ing.Name)
		if len(ing.Preparation) > 0 {
			fmt.Fprintf(&b, ", %s", strings.Join(ing.Preparation, " and "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nInstructions:\n")
	step := 1
	for _, in := range r.Instructions {
		if len(in.Text) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %d. %s\n", step, in.Text)
		step++
	}
	return b.String()
}

// formatQuantity prints whole quantities without a decimal point and
// fractional ones rounded to two places.
func formatQuantity(q float64) string {
	if q == float64(int(q)) {
		return fmt.Sprintf("%d", int(q))
	}
	return fmt.Sprintf("%.2f", q)
}
