package app

import (
	"strings"

	"cheapeats/internal/domain"
)

// classifierRule matches a lowercased place name (or provider cuisine
// tag) to a category, optionally binding a brand catalog. Rules are
// evaluated in order and the first hit wins: brand rules sit above
// cuisine rules so "McDonald's Chinese Fusion" lands in the McDonald's
// bucket, not Chinese Cuisine.
type classifierRule struct {
	keywords []string
	category domain.Category
	brand    string // non-empty selects a curated brand catalog
}

var classifierRules = []classifierRule{
	// brands first
	{[]string{"mcdonald"}, domain.CategoryBurgers, "mcdonalds"},
	{[]string{"burger king"}, domain.CategoryBurgers, "burgerking"},
	{[]string{"wendy"}, domain.CategoryBurgers, "wendys"},
	{[]string{"taco bell"}, domain.CategoryMexican, "tacobell"},
	{[]string{"chipotle"}, domain.CategoryMexican, "chipotle"},
	{[]string{"subway"}, domain.CategoryHealthy, "subway"},
	{[]string{"starbucks"}, domain.CategoryCoffee, "starbucks"},
	{[]string{"dunkin"}, domain.CategoryCoffee, "dunkin"},
	{[]string{"domino"}, domain.CategoryPizza, "dominos"},
	{[]string{"pizza hut"}, domain.CategoryPizza, "pizzahut"},
	{[]string{"kfc", "kentucky fried"}, domain.CategoryBurgers, "kfc"},

	// generic cuisine keywords
	{[]string{"pizza", "pizzeria", "italian", "trattoria", "pasta"}, domain.CategoryPizza, ""},
	{[]string{"chinese", "wok", "szechuan", "dumpling", "dim sum", "noodle"}, domain.CategoryChinese, ""},
	{[]string{"taco", "taqueria", "burrito", "mexican", "cantina"}, domain.CategoryMexican, ""},
	{[]string{"sushi", "japanese", "ramen", "hibachi", "izakaya"}, domain.CategorySushi, ""},
	{[]string{"coffee", "cafe", "café", "espresso", "bakery", "donut", "doughnut"}, domain.CategoryCoffee, ""},
	{[]string{"salad", "juice", "vegan", "vegetarian", "bowl", "greens"}, domain.CategoryHealthy, ""},
	{[]string{"ice cream", "creamery", "dessert", "cake", "frozen yogurt", "gelato"}, domain.CategoryDesserts, ""},
	{[]string{"bar", "pub", "tavern", "lounge", "brewery", "taproom"}, domain.CategoryHappyHr, ""},
	{[]string{"burger", "grill", "bbq", "barbecue", "wings", "fried chicken"}, domain.CategoryBurgers, ""},
}

// classify resolves a place to a category and optional brand key.
// The place name is checked against every rule before cuisine tags are
// consulted, preserving predicate-order precedence.
func classify(name string, cuisineTags []string) (domain.Category, string) {
	lower := strings.ToLower(name)
	for _, r := range classifierRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category, r.brand
			}
		}
	}
	for _, tag := range cuisineTags {
		tag = strings.ToLower(tag)
		for _, r := range classifierRules {
			if r.brand != "" {
				continue // brand catalogs only bind on name matches
			}
			for _, kw := range r.keywords {
				if strings.Contains(tag, kw) {
					return r.category, ""
				}
			}
		}
	}
	return domain.CategoryDiner, ""
}

// brandTemplates holds real, brand-accurate promotions keyed by brand.
var brandTemplates = map[string][]domain.DealTemplate{
	"mcdonalds": {
		{Title: "Free Medium Fries Friday", Description: "Free medium fries with any $1+ purchase in the app.", Price: "FREE", Category: domain.CategoryBurgers, Instructions: "Order through the McDonald's app and add medium fries; the discount applies at checkout.", Validity: "Every Friday"},
		{Title: "2 for $6 Mix & Match", Description: "Pick two: Big Mac, 10-pc McNuggets, Quarter Pounder with Cheese.", Price: "$6.00", OriginalPrice: "$11.98", Category: domain.CategoryBurgers, Instructions: "Ask for the 2 for $6 Mix & Match at the counter or drive-thru.", Validity: "Ongoing"},
	},
	"burgerking": {
		{Title: "2 Whoppers for $6", Description: "Two flame-grilled Whoppers at one small price.", Price: "$6.00", OriginalPrice: "$12.00", Category: domain.CategoryBurgers, Instructions: "Select the 2 for $6 deal in the BK app or mention it in store.", Validity: "Ongoing"},
		{Title: "Free Whopper with $3 Purchase", Description: "Royal Perks members get a free Whopper with any $3 order.", Price: "FREE", Category: domain.CategoryBurgers, Instructions: "Join Royal Perks in the app and redeem under Offers.", Validity: "Daily"},
	},
	"wendys": {
		{Title: "$1 Any Size Fry", Description: "Any size of Wendy's natural-cut fries for a dollar.", Price: "$1.00", OriginalPrice: "$3.49", Category: domain.CategoryBurgers, Instructions: "Redeem the $1 Any Size Fry offer in the Wendy's app.", Validity: "Ongoing"},
		{Title: "Biggie Bag $5", Description: "Bacon double stack, 4-pc nuggets, fries and a drink.", Price: "$5.00", OriginalPrice: "$9.00", Category: domain.CategoryBurgers, Instructions: "Order the $5 Biggie Bag at the counter, drive-thru, or app.", Validity: "Ongoing"},
	},
	"tacobell": {
		{Title: "Taco Tuesday Doubles", Description: "Buy one Crunchy Taco, get one free.", Price: "BOGO", Category: domain.CategoryMexican, Instructions: "Mention Taco Tuesday at the register; one redemption per visit.", Validity: "Every Tuesday"},
		{Title: "$5 Cravings Box", Description: "Chalupa Supreme, 5-layer burrito, crunchy taco, chips and a drink.", Price: "$5.00", OriginalPrice: "$9.50", Category: domain.CategoryMexican, Instructions: "Order the $5 Cravings Box in the app for pickup.", Validity: "Ongoing"},
	},
	"chipotle": {
		{Title: "Free Chips & Guac", Description: "Free chips and guacamole with any entrée for rewards members.", Price: "FREE", Category: domain.CategoryMexican, Instructions: "Sign up for Chipotle Rewards; the offer lands in your account within 24h.", Validity: "New members"},
	},
	"subway": {
		{Title: "Footlong for $6.99", Description: "Any classic footlong sub.", Price: "$6.99", OriginalPrice: "$9.49", Category: domain.CategoryHealthy, Instructions: "Use code 699FL in the Subway app or online order.", Validity: "Ongoing"},
		{Title: "BOGO 50% Off Footlongs", Description: "Second footlong half price.", Price: "50% OFF", Category: domain.CategoryHealthy, Instructions: "Use code BOGO50 at online checkout.", Validity: "Daily"},
	},
	"starbucks": {
		{Title: "Happy Hour: 50% Off Frappuccinos", Description: "Half-price handcrafted Frappuccino after 12pm.", Price: "50% OFF", Category: domain.CategoryCoffee, Instructions: "Check the Starbucks app Offers tab on Thursdays and order after 12pm.", Validity: "Thursdays 12-6pm"},
		{Title: "Double Star Day", Description: "Earn double stars on every purchase.", Price: "Rewards", Category: domain.CategoryCoffee, Instructions: "Activate the offer in the Starbucks app before ordering.", Validity: "Select days"},
	},
	"dunkin": {
		{Title: "$3 Medium Iced Coffee", Description: "Any flavor medium iced coffee.", Price: "$3.00", OriginalPrice: "$4.29", Category: domain.CategoryCoffee, Instructions: "Order ahead in the Dunkin' app; offer applies automatically.", Validity: "Ongoing"},
	},
	"dominos": {
		{Title: "Mix & Match $6.99 Each", Description: "Choose any two or more: medium 2-topping pizza, pasta, wings, sandwiches.", Price: "$6.99", OriginalPrice: "$11.99", Category: domain.CategoryPizza, Instructions: "Pick the Mix & Match deal when ordering online.", Validity: "Ongoing"},
	},
	"pizzahut": {
		{Title: "$7 Deal Lover's Menu", Description: "Medium 1-topping pizzas, 8 boneless wings, or Melts.", Price: "$7.00", OriginalPrice: "$10.99", Category: domain.CategoryPizza, Instructions: "Order two or more items from the Deal Lover's menu online.", Validity: "Ongoing"},
	},
	"kfc": {
		{Title: "8-Piece Bucket Tuesday", Description: "8 pieces of fried chicken at a throwback price.", Price: "$10.99", OriginalPrice: "$16.99", Category: domain.CategoryBurgers, Instructions: "Available in-store and on the KFC app every Tuesday.", Validity: "Every Tuesday"},
	},
}

// genericTemplates backs places without a brand match, keyed by category.
var genericTemplates = map[domain.Category][]domain.DealTemplate{
	domain.CategoryPizza: {
		{Title: "Two Slices & a Soda", Description: "Classic NY combo at lunch price.", Price: "$5.99", OriginalPrice: "$8.50", Category: domain.CategoryPizza, Instructions: "Mention the lunch combo at the counter before 3pm.", Validity: "Daily until 3pm"},
		{Title: "Large Pie Monday", Description: "Any large cheese pie discounted to start the week.", Price: "$12.99", OriginalPrice: "$18.99", Category: domain.CategoryPizza, Instructions: "Dine-in or takeout; mention the Monday special when ordering.", Validity: "Mondays"},
	},
	domain.CategoryChinese: {
		{Title: "Lunch Special with Free Soup", Description: "Any lunch entrée comes with egg-drop or hot & sour soup.", Price: "$8.95", OriginalPrice: "$12.95", Category: domain.CategoryChinese, Instructions: "Order from the lunch menu, 11am-3pm.", Validity: "Daily 11am-3pm"},
		{Title: "Free Egg Rolls over $25", Description: "Two free egg rolls with orders of $25 or more.", Price: "FREE", Category: domain.CategoryChinese, Instructions: "Ask when placing a pickup or delivery order over $25.", Validity: "Ongoing"},
	},
	domain.CategoryMexican: {
		{Title: "Taco Tuesday $1.50 Tacos", Description: "Street tacos at a dollar fifty each, all day.", Price: "$1.50", OriginalPrice: "$3.00", Category: domain.CategoryMexican, Instructions: "Dine-in only on Tuesdays; no coupon needed.", Validity: "Every Tuesday"},
		{Title: "Free Chips & Salsa", Description: "Complimentary chips and salsa with any entrée.", Price: "FREE", Category: domain.CategoryMexican, Instructions: "Mention the deal to your server when ordering an entrée.", Validity: "Ongoing"},
	},
	domain.CategorySushi: {
		{Title: "Half-Price Rolls Happy Hour", Description: "Select maki rolls 50% off.", Price: "50% OFF", Category: domain.CategorySushi, Instructions: "Order from the happy hour menu, weekdays 4-6pm, dine-in only.", Validity: "Weekdays 4-6pm"},
		{Title: "Bento Box Lunch", Description: "Chef's bento with miso soup and salad.", Price: "$11.95", OriginalPrice: "$16.95", Category: domain.CategorySushi, Instructions: "Order the lunch bento before 2:30pm.", Validity: "Daily until 2:30pm"},
	},
	domain.CategoryCoffee: {
		{Title: "Buy One Get One Latte", Description: "Second latte of equal or lesser value free.", Price: "BOGO", Category: domain.CategoryCoffee, Instructions: "Show this deal at the register; one per customer.", Validity: "Weekdays 2-5pm"},
		{Title: "Pastry & Drip Combo", Description: "Any pastry plus a drip coffee.", Price: "$4.50", OriginalPrice: "$7.00", Category: domain.CategoryCoffee, Instructions: "Ask for the morning combo before 10am.", Validity: "Daily until 10am"},
	},
	domain.CategoryHealthy: {
		{Title: "Build-a-Bowl Discount", Description: "Any custom grain or salad bowl.", Price: "$9.49", OriginalPrice: "$12.99", Category: domain.CategoryHealthy, Instructions: "Order in the mobile app and apply the bowl offer at checkout.", Validity: "Ongoing"},
		{Title: "Free Smoothie Upgrade", Description: "Free size upgrade on any smoothie.", Price: "Upgrade", Category: domain.CategoryHealthy, Instructions: "Ask for the free upgrade at the counter.", Validity: "Daily"},
	},
	domain.CategoryDesserts: {
		{Title: "Second Scoop Half Off", Description: "Add a second scoop for 50% off.", Price: "50% OFF", Category: domain.CategoryDesserts, Instructions: "Mention the deal when ordering; waffle cones excluded.", Validity: "Ongoing"},
	},
	domain.CategoryHappyHr: {
		{Title: "Happy Hour Apps & Drafts", Description: "$5 select appetizers and $4 draft beers.", Price: "$4.00", OriginalPrice: "$8.00", Category: domain.CategoryHappyHr, Instructions: "Bar area only, weekdays 4-7pm.", Validity: "Weekdays 4-7pm"},
		{Title: "Late Night Bites", Description: "Half-price shareables after 9pm.", Price: "50% OFF", Category: domain.CategoryHappyHr, Instructions: "Order from the late-night menu after 9pm.", Validity: "Daily after 9pm"},
	},
	domain.CategoryDiner: {
		{Title: "Early Bird Breakfast", Description: "Two eggs, toast, home fries and coffee.", Price: "$6.99", OriginalPrice: "$10.50", Category: domain.CategoryDiner, Instructions: "Order the early bird special before 9am.", Validity: "Daily until 9am"},
		{Title: "Kids Eat Free Sunday", Description: "One free kids meal per adult entrée.", Price: "FREE", Category: domain.CategoryDiner, Instructions: "Dine-in Sundays; one kids meal per paying adult.", Validity: "Sundays"},
		{Title: "Blue Plate Lunch", Description: "Rotating daily entrée with two sides.", Price: "$9.99", OriginalPrice: "$13.99", Category: domain.CategoryDiner, Instructions: "Ask your server for today's blue plate.", Validity: "Weekdays 11am-3pm"},
	},
}

// scoutNames attribute synthesized deals to community members.
var scoutNames = []string{
	"PizzaFan", "BBQMaster", "SushiMaster", "CocktailConnoisseur",
	"TacoTuesday", "WingLover23", "BurgerKing", "PastaLover",
}
