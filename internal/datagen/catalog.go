package datagen

// product is a catalog entry with the price band its orders are drawn from.
type product struct {
	name     string
	minPrice float64
	maxPrice float64
}

type subcategory struct {
	name     string
	products []product
}

type category struct {
	name          string
	subcategories []subcategory
}

// catalog is the fixed product hierarchy the generator samples from. Every
// product belongs to exactly one subcategory, every subcategory to exactly
// one category, so the drill-down hierarchy is unambiguous.
var catalog = []category{
	{
		name: "Electronics",
		subcategories: []subcategory{
			{name: "Laptops", products: []product{
				{"Ultrabook Pro 14", 899, 1899},
				{"Gaming Laptop X", 1199, 2499},
				{"Budget Notebook", 349, 699},
			}},
			{name: "Smartphones", products: []product{
				{"Flagship Phone S", 799, 1299},
				{"Midrange Phone M", 299, 549},
				{"Compact Phone C", 199, 399},
			}},
			{name: "Audio", products: []product{
				{"Wireless Earbuds", 59, 249},
				{"Studio Headphones", 149, 399},
				{"Bluetooth Speaker", 39, 179},
			}},
			{name: "Accessories", products: []product{
				{"USB-C Hub", 19, 79},
				{"Mechanical Keyboard", 69, 189},
				{"Wireless Mouse", 15, 89},
			}},
		},
	},
	{
		name: "Clothing",
		subcategories: []subcategory{
			{name: "Men's Wear", products: []product{
				{"Oxford Shirt", 29, 89},
				{"Slim Fit Jeans", 39, 119},
				{"Wool Sweater", 49, 149},
			}},
			{name: "Women's Wear", products: []product{
				{"Summer Dress", 34, 129},
				{"Knit Cardigan", 39, 109},
				{"High-Waist Trousers", 44, 99},
			}},
			{name: "Footwear", products: []product{
				{"Running Sneakers", 59, 179},
				{"Leather Boots", 89, 249},
				{"Canvas Shoes", 29, 69},
			}},
		},
	},
	{
		name: "Home & Kitchen",
		subcategories: []subcategory{
			{name: "Appliances", products: []product{
				{"Espresso Machine", 129, 699},
				{"Air Fryer", 69, 199},
				{"Stand Mixer", 199, 499},
			}},
			{name: "Furniture", products: []product{
				{"Office Chair", 119, 449},
				{"Bookshelf", 79, 299},
				{"Standing Desk", 249, 699},
			}},
			{name: "Decor", products: []product{
				{"Table Lamp", 24, 119},
				{"Wall Art Print", 19, 89},
				{"Area Rug", 59, 349},
			}},
		},
	},
	{
		name: "Sports & Outdoors",
		subcategories: []subcategory{
			{name: "Fitness", products: []product{
				{"Adjustable Dumbbells", 99, 349},
				{"Yoga Mat", 19, 79},
				{"Resistance Bands", 12, 49},
			}},
			{name: "Outdoor", products: []product{
				{"2-Person Tent", 89, 299},
				{"Hiking Backpack", 59, 199},
				{"Insulated Bottle", 19, 49},
			}},
		},
	},
	{
		name: "Books",
		subcategories: []subcategory{
			{name: "Fiction", products: []product{
				{"Mystery Novel", 9, 24},
				{"Sci-Fi Anthology", 11, 29},
				{"Literary Classic", 7, 19},
			}},
			{name: "Non-Fiction", products: []product{
				{"Biography", 12, 29},
				{"Popular Science", 14, 34},
				{"Cookbook", 18, 44},
			}},
		},
	},
}

var countries = []string{
	"United States", "United Kingdom", "Germany", "France", "Canada",
	"Australia", "India", "Brazil", "Japan", "Netherlands",
}

var genders = []string{"Female", "Male", "Other"}

var paymentMethods = []string{
	"Credit Card", "Debit Card", "PayPal", "Bank Transfer", "Gift Card",
	"Cash On Delivery",
}
