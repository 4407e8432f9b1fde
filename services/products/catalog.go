package products

var initialCatalog = []Product{
	{
		UID:          "product_hockey_stick",
		Name:         "Hockey stick",
		Description:  "Carbon hockey stick, 36.5 inch",
		PriceInCents: 19000,
		Currency:     "EUR",
		ImageURL:     "/images/hockey_stick.jpg",
		Category:     "hockey",
		Stock:        12,
	},
	{
		UID:          "product_hockey_shoes",
		Name:         "Hockey shoes",
		Description:  "Water resistant turf shoes",
		PriceInCents: 12000,
		Currency:     "EUR",
		ImageURL:     "/images/hockey_shoes.jpg",
		Category:     "hockey",
		Stock:        25,
	},
	{
		UID:          "product_tennis_racket",
		Name:         "Tennis racket",
		Description:  "Graphite frame, 300 grams",
		PriceInCents: 16900,
		Currency:     "EUR",
		ImageURL:     "/images/tennis_racket.jpg",
		Category:     "tennis",
		Stock:        8,
	},
	{
		UID:          "product_tennis_balls",
		Name:         "Tennis balls",
		Description:  "Tube of 4 pressurised balls",
		PriceInCents: 1000,
		Currency:     "EUR",
		ImageURL:     "/images/tennis_balls.jpg",
		Category:     "tennis",
		Stock:        100,
	},
	{
		UID:          "product_running_shoes",
		Name:         "Running shoes",
		Description:  "Neutral road running shoes",
		PriceInCents: 12000,
		Currency:     "EUR",
		ImageURL:     "/images/running_shoes.jpg",
		Category:     "running",
		Stock:        30,
	},
	{
		UID:          "product_running_shirt",
		Name:         "Running shirt",
		Description:  "Breathable short sleeve shirt",
		PriceInCents: 5000,
		Currency:     "EUR",
		ImageURL:     "/images/running_shirt.jpg",
		Category:     "running",
		Stock:        40,
	},
	{
		UID:          "product_running_socks",
		Name:         "Running socks",
		Description:  "Anti-blister socks, 3 pairs",
		PriceInCents: 1000,
		Currency:     "EUR",
		ImageURL:     "/images/running_socks.jpg",
		Category:     "running",
		Stock:        60,
	},
	{
		UID:          "product_jogging_pants",
		Name:         "Jogging pants",
		Description:  "Tapered fit jogging pants",
		PriceInCents: 6000,
		Currency:     "EUR",
		ImageURL:     "/images/jogging_pants.jpg",
		Category:     "running",
		Stock:        20,
	},
}
