package taxonomy

// DomainType classifies an ingredient's food category with a single-letter
// tag. Exactly one tag is assigned per ingredient; resolution walks the
// precedence order and the first matching domain wins.
type DomainType string

const (
	// Meat covers poultry, beef, pork, game and other land animal products.
	Meat DomainType = "M"

	// Vegetable covers vegetables and leafy greens.
	Vegetable DomainType = "V"

	// Dairy covers milk products including cheese, cream and butter.
	Dairy DomainType = "D"

	// Grain covers grains, cereals, pastas and flours.
	Grain DomainType = "G"

	// Sauce covers sauces and condiments. A name containing the word
	// "sauce" always resolves to this domain regardless of the word lists.
	Sauce DomainType = "S"

	// Seafood covers fish and shellfish (pescatarian-compatible protein).
	Seafood DomainType = "P"

	// Herb covers culinary herbs and spices.
	Herb DomainType = "H"

	// Fruit covers fruits.
	Fruit DomainType = "F"

	// Unknown is the fallback when no domain matches.
	Unknown DomainType = "?"
)

// precedence is the fixed resolution order. More telling domains come first
// so an ambiguous name is bound to exactly one classification.
var precedence = []DomainType{Meat, Vegetable, Dairy, Grain, Sauce, Seafood, Herb, Fruit}
