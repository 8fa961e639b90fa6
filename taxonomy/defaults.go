package taxonomy

// DefaultLists is a built-in reference vocabulary so the module works
// without fetching the external word-list pages. The scrape package can
// replace or extend these with freshly fetched lists.
func DefaultLists() Lists {
	return Lists{
		Vegetables: []string{
			"arugula", "asparagus", "avocado", "beet", "bell pepper",
			"broccoli", "brussels sprouts", "cabbage", "carrot", "carrots",
			"cauliflower", "celery", "corn", "cucumber", "eggplant",
			"green beans", "kale", "leek", "lettuce", "mushroom",
			"mushrooms", "onion", "onions", "peas", "pepper", "potato",
			"potatoes", "pumpkin", "radish", "scallion", "shallot",
			"spinach", "squash", "tomato", "tomatoes", "turnip", "zucchini",
		},
		Herbs: []string{
			"basil", "bay leaf", "chives", "cilantro", "cinnamon", "clove",
			"coriander", "cumin", "dill", "garlic", "ginger", "mint",
			"nutmeg", "oregano", "paprika", "parsley", "pepper flakes",
			"rosemary", "saffron", "sage", "salt", "tarragon", "thyme",
			"turmeric", "vanilla",
		},
		Sauces: []string{
			"aioli", "barbecue sauce", "bechamel", "chimichurri", "gravy",
			"guacamole", "hummus", "ketchup", "marinara", "mayonnaise",
			"mustard", "pesto", "salsa", "soy sauce", "sriracha", "tahini",
			"teriyaki", "vinaigrette",
		},
		Dairy: []string{
			"butter", "buttermilk", "cheddar", "cheese", "cream",
			"cream cheese", "creme fraiche", "ghee", "ice cream",
			"margarine", "milk", "mozzarella", "parmesan", "ricotta",
			"sour cream", "yogurt",
		},
		Meats: []string{
			"bacon", "beef", "bratwurst", "chicken", "chorizo", "duck",
			"ham", "lamb", "meatballs", "mutton", "pepperoni", "pork",
			"prosciutto", "salami", "sausage", "steak", "turkey", "veal",
			"venison",
		},
		Seafood: []string{
			"anchovy", "calamari", "catfish", "clams", "cod", "crab",
			"halibut", "lobster", "mackerel", "mussels", "octopus",
			"oysters", "prawns", "salmon", "sardines", "scallops",
			"shrimp", "snapper", "squid", "swordfish", "tilapia", "trout",
			"tuna",
		},
		Grains: []string{
			"barley", "bread", "bulgur", "cornmeal", "couscous", "flour",
			"granola", "macaroni", "noodles", "oatmeal", "oats", "pasta",
			"quinoa", "rice", "rye", "semolina", "spaghetti", "tortilla",
			"wheat",
		},
		Fruits: []string{
			"apple", "apples", "apricot", "banana", "blueberries",
			"cherries", "cranberries", "dates", "fig", "grapefruit",
			"grapes", "lemon", "lime", "mango", "melon", "orange",
			"oranges", "peach", "pear", "pineapple", "plum", "raisins",
			"raspberries", "strawberries", "watermelon",
		},
	}
}

// Default builds a Taxonomy from the built-in lists.
func Default() *Taxonomy {
	return New(DefaultLists())
}
