package catalog

import (
	"errors"
	"fmt"
	"time"
)

// Target row counts and the historical window. These are part of the dataset
// contract, not runtime flags: the only external input to generation is the
// PRNG seed.
const (
	CustomerCount = 2000
	OrderCount    = 12000
	TicketCount   = 5000
	DefaultSeed   = 2024
)

var (
	WindowStart = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	WindowEnd   = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
)

// States is the canonical state order. Every other state-keyed table must
// cover exactly these keys.
var States = []string{
	"Maharashtra", "Karnataka", "Tamil Nadu", "Delhi", "Uttar Pradesh",
	"West Bengal", "Gujarat", "Rajasthan", "Telangana", "Andhra Pradesh",
	"Kerala", "Punjab", "Madhya Pradesh", "Haryana", "Bihar",
}

var StateCities = map[string][]string{
	"Maharashtra":    {"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad", "Thane"},
	"Karnataka":      {"Bengaluru", "Mysuru", "Mangaluru", "Hubli", "Belagavi"},
	"Tamil Nadu":     {"Chennai", "Coimbatore", "Madurai", "Salem", "Tiruchirappalli"},
	"Delhi":          {"New Delhi", "Noida", "Gurgaon", "Faridabad", "Dwarka"},
	"Uttar Pradesh":  {"Lucknow", "Kanpur", "Agra", "Varanasi", "Prayagraj", "Meerut"},
	"West Bengal":    {"Kolkata", "Howrah", "Siliguri", "Asansol", "Durgapur"},
	"Gujarat":        {"Ahmedabad", "Surat", "Vadodara", "Rajkot", "Gandhinagar"},
	"Rajasthan":      {"Jaipur", "Jodhpur", "Udaipur", "Kota", "Ajmer"},
	"Telangana":      {"Hyderabad", "Warangal", "Nizamabad", "Karimnagar"},
	"Andhra Pradesh": {"Visakhapatnam", "Vijayawada", "Guntur", "Tirupati"},
	"Kerala":         {"Thiruvananthapuram", "Kochi", "Kozhikode", "Thrissur"},
	"Punjab":         {"Ludhiana", "Amritsar", "Jalandhar", "Patiala"},
	"Madhya Pradesh": {"Bhopal", "Indore", "Gwalior", "Jabalpur"},
	"Haryana":        {"Chandigarh", "Gurugram", "Faridabad", "Ambala"},
	"Bihar":          {"Patna", "Gaya", "Muzaffarpur", "Bhagalpur"},
}

var StateZones = map[string]string{
	"Maharashtra": "West", "Gujarat": "West", "Rajasthan": "West",
	"Karnataka": "South", "Tamil Nadu": "South", "Telangana": "South",
	"Andhra Pradesh": "South", "Kerala": "South",
	"Delhi": "North", "Uttar Pradesh": "North", "Punjab": "North",
	"Haryana": "North", "Madhya Pradesh": "North",
	"West Bengal": "East", "Bihar": "East",
}

// StatePinPrefix holds the first pincode digit per state.
var StatePinPrefix = map[string]int{
	"Maharashtra": 4, "Karnataka": 5, "Tamil Nadu": 6, "Delhi": 1,
	"Uttar Pradesh": 2, "West Bengal": 7, "Gujarat": 3, "Rajasthan": 3,
	"Telangana": 5, "Andhra Pradesh": 5, "Kerala": 6, "Punjab": 1,
	"Madhya Pradesh": 4, "Haryana": 1, "Bihar": 8,
}

// Category describes one product category: its product pool, uniform price
// range and GST percentage. Categories are an ordered slice (not a map) so
// that generation draws are reproducible.
type Category struct {
	Name     string
	Products []string
	PriceLo  float64
	PriceHi  float64
	GSTPct   float64
	Weight   float64
}

var Categories = []Category{
	{
		Name: "Electronics",
		Products: []string{
			"Redmi Note 13 Pro", "OnePlus Nord CE4", "Samsung Galaxy M34",
			"boAt Airdopes 141", "Fire-Boltt Ninja", "Lenovo IdeaPad Slim 3",
			"HP 15s Laptop", "Realme Pad 2", "Mi 43\" Smart TV", "Noise ColorFit Pro 4",
		},
		PriceLo: 499, PriceHi: 55000, GSTPct: 18, Weight: 25,
	},
	{
		Name: "Fashion",
		Products: []string{
			"Manyavar Kurta", "W for Woman Saree", "Peter England Shirt",
			"Bata Sneakers", "Fabindia Cotton Kurta", "Allen Solly Trousers",
			"Aurelia Ethnic Set", "Arrow Formal Shirt", "Jockey T-Shirt", "Libas Kurti",
		},
		PriceLo: 199, PriceHi: 4999, GSTPct: 12, Weight: 20,
	},
	{
		Name: "Home & Kitchen",
		Products: []string{
			"Prestige Induction Cooktop", "Pigeon Non-stick Tawa",
			"Milton Thermosteel Flask", "Usha Mixer Grinder",
			"Philips Air Purifier", "Godrej Refrigerator 260L",
			"Havells Stand Fan", "IFB 6kg Washing Machine",
			"Cello Water Bottle", "Solimo Bed Sheet Set",
		},
		PriceLo: 299, PriceHi: 22000, GSTPct: 18, Weight: 15,
	},
	{
		Name: "Grocery & FMCG",
		Products: []string{
			"Amul Butter 500g", "Tata Tea Premium 1kg", "Surf Excel Matic 2kg",
			"Maggi 2-Minute Noodles 12pk", "Fortune Sunflower Oil 5L",
			"Colgate Strong Teeth 300g", "Dettol Antiseptic 500ml",
			"Parle-G Biscuits 800g", "Haldiram's Namkeen 400g", "ITC Aashirvaad Atta 10kg",
		},
		PriceLo: 49, PriceHi: 799, GSTPct: 5, Weight: 12,
	},
	{
		Name: "Beauty & Personal",
		Products: []string{
			"Lakme 9to5 Foundation", "L'Oreal Hair Colour",
			"Dove Shampoo 650ml", "Himalaya Face Wash", "Nivea Body Lotion",
			"Mamaearth Vitamin C Serum", "WOW Skin Science Shampoo",
			"Biotique Bio Honey Cream", "Plum Green Tea Toner", "mCaffeine Coffee Face Scrub",
		},
		PriceLo: 99, PriceHi: 1999, GSTPct: 18, Weight: 10,
	},
	{
		Name: "Pharma & Health",
		Products: []string{
			"Dolo 650 Strip", "Crocin Pain Relief", "Hajmola Candy",
			"Revital H Capsules", "Dabur Chyawanprash 1kg",
			"HealthKart Whey Protein", "Glucon-D 1kg",
			"Patanjali Ashwagandha", "Zandu Balm 50ml", "Himalaya Liv.52",
		},
		PriceLo: 29, PriceHi: 1899, GSTPct: 5, Weight: 8,
	},
	{
		Name: "Sports & Fitness",
		Products: []string{
			"Cosco Football", "Vector X Cricket Bat",
			"Nivia Gym Gloves", "Kalenji Running Shoes",
			"Decathlon Yoga Mat", "Yonex Badminton Racket",
			"Strauss Resistance Band", "Boldfit Gym Bag",
			"SG Cricket Pads", "Sparx Running Shoes",
		},
		PriceLo: 299, PriceHi: 4999, GSTPct: 12, Weight: 6,
	},
	{
		Name: "Books & Education",
		Products: []string{
			"NCERT Class 12 Physics", "Arihant JEE Mathematics",
			"Let Us C by Yashavant Kanetkar", "Wings of Fire by Kalam",
			"The 3 Mistakes of My Life", "Atomic Habits Hindi",
			"Manorama Year Book 2024", "Oswaal CBSE Sample Papers",
			"R.D. Sharma Maths Class 10", "Lucent General Knowledge",
		},
		PriceLo: 79, PriceHi: 899, GSTPct: 0, Weight: 4,
	},
}

var (
	PaymentMethods = []string{"UPI", "Credit Card", "Debit Card", "COD", "Net Banking", "EMI", "Wallet"}
	PaymentWeights = []float64{40, 18, 15, 12, 7, 5, 3}

	OrderStatuses = []string{"Delivered", "Shipped", "Processing", "Cancelled", "Returned"}
	OrderWeights  = []float64{65, 12, 8, 10, 5}

	Segments       = []string{"Retail", "Wholesale", "SME", "Corporate"}
	SegmentWeights = []float64{55, 20, 15, 10}

	// SegmentMultiplier models billing differences: corporate accounts buy
	// bigger baskets than retail ones.
	SegmentMultiplier = map[string]float64{
		"Corporate": 1.5, "Wholesale": 1.3, "SME": 1.1, "Retail": 1.0,
	}

	AgeGroups  = []string{"18-25", "26-35", "36-45", "46-60", "60+"}
	AgeWeights = []float64{20, 35, 25, 15, 5}

	CustomerStatuses = []string{"Active", "Churned", "At-Risk"}
	CustomerStatusW  = []float64{72, 14, 14}

	TicketCategories = []string{
		"Delivery Issue", "Product Defect", "Wrong Item", "Payment Failed",
		"Return/Refund", "Account Issue", "Order Cancellation", "Quality Issue",
	}
	TicketPriorities = []string{"Low", "Medium", "High", "Critical"}
	TicketPriorityW  = []float64{25, 45, 20, 10}
	TicketStatuses   = []string{"Resolved", "Open", "Escalated", "Pending"}
	TicketStatusW    = []float64{68, 12, 10, 10}

	ReturnReasons = []string{
		"Product Defective", "Wrong Item Delivered", "Size/Fit Issue",
		"Not as Described", "Damaged Packaging", "Changed Mind",
		"Better Price Available", "Delayed Delivery",
	}
	RefundStatuses = []string{"Completed", "Pending", "Processing"}
	RefundWeights  = []float64{70, 18, 12}

	Teams  = []string{"Tier-1 Support", "Tier-2 Technical", "Returns & Refunds", "Escalations", "Billing"}
	Shifts = []string{"Morning (6-14)", "Afternoon (14-22)", "Night (22-6)"}
)

// ResolutionHours maps ticket priority to its [lo, hi) resolution-hour range.
// Higher priorities get tighter SLAs.
var ResolutionHours = map[string][2]float64{
	"Low":      {12, 72},
	"Medium":   {4, 24},
	"High":     {1, 12},
	"Critical": {0.5, 6},
}

// TierLevel is one row of the descending tier threshold table.
type TierLevel struct {
	Name      string
	Threshold float64
}

// TierThresholds is ordered highest first; TierFor picks the first level
// whose threshold is <= spend. Thresholds are inclusive.
var TierThresholds = []TierLevel{
	{"Platinum", 50000},
	{"Gold", 20000},
	{"Silver", 8000},
	{"Bronze", 0},
}

const LowestTier = "Bronze"

// TierFor maps cumulative delivered-order spend to a tier name.
func TierFor(spend float64) string {
	for _, lvl := range TierThresholds {
		if spend >= lvl.Threshold {
			return lvl.Name
		}
	}
	return LowestTier
}

// MonthWeights is the seasonal order-volume table. October/November carry the
// Diwali bump, January the Republic Day sale, August Independence Day.
var MonthWeights = map[time.Month]float64{
	time.October: 2.8, time.November: 2.2, time.January: 1.8,
	time.August: 1.5, time.March: 1.3, time.July: 1.2,
}

// MonthWeight returns the configured weight for m, defaulting to 1.0 for
// neutral months.
func MonthWeight(m time.Month) float64 {
	if w, ok := MonthWeights[m]; ok {
		return w
	}
	return 1.0
}

var FirstNames = []string{
	"Aarav", "Vivaan", "Aditya", "Arjun", "Rohit", "Priya", "Sneha", "Anjali", "Kavya", "Pooja",
	"Vikram", "Rahul", "Suresh", "Ravi", "Amit", "Neha", "Sita", "Deepa", "Meera", "Divya",
	"Kiran", "Raj", "Sanjay", "Manoj", "Vijay", "Lakshmi", "Sunita", "Geeta", "Anita", "Rekha",
	"Harish", "Naresh", "Ramesh", "Sunil", "Arun", "Usha", "Mala", "Sonal", "Jyoti", "Ritu",
	"Kartik", "Nikhil", "Akash", "Varun", "Tushar", "Ritika", "Shruti", "Swati", "Pallavi", "Nisha",
}

var LastNames = []string{
	"Sharma", "Verma", "Gupta", "Singh", "Kumar", "Patel", "Shah", "Joshi", "Mehta", "Iyer",
	"Nair", "Pillai", "Reddy", "Naidu", "Rao", "Das", "Ghosh", "Mukherjee", "Banerjee", "Sen",
	"Mishra", "Pandey", "Tiwari", "Dubey", "Yadav", "Malhotra", "Chopra", "Khanna", "Arora", "Bhatia",
	"Agarwal", "Garg", "Goyal", "Mittal", "Jain", "Desai", "Patil", "More", "Jadhav", "Sawant",
}

var AgentNames = []string{
	"Aryan Kapoor", "Shreya Menon", "Rohan Das", "Preethi Subramaniam", "Vikash Yadav",
	"Tanvi Kulkarni", "Mohit Sharma", "Nandini Iyer", "Gaurav Tiwari", "Riya Banerjee",
	"Aman Bhatt", "Pallavi Reddy", "Deepak Singh", "Swati Joshi", "Karthik Nair",
	"Ankita Patel", "Nitin Malhotra", "Divya Agarwal", "Saurabh Gupta", "Megha Pillai",
}

// ErrInvalidCatalog marks a structurally broken master-data configuration.
var ErrInvalidCatalog = errors.New("catalog: invalid master data")

func allZero(ws []float64) bool {
	for _, w := range ws {
		if w > 0 {
			return false
		}
	}
	return true
}

// Validate checks every structural precondition the generator relies on.
// A failure here is a configuration defect and must abort the run before any
// row is written.
func Validate() error {
	if len(States) == 0 {
		return fmt.Errorf("%w: empty state list", ErrInvalidCatalog)
	}
	for _, st := range States {
		if len(StateCities[st]) == 0 {
			return fmt.Errorf("%w: state %q has no cities", ErrInvalidCatalog, st)
		}
		if _, ok := StateZones[st]; !ok {
			return fmt.Errorf("%w: state %q has no zone", ErrInvalidCatalog, st)
		}
	}
	if len(Categories) == 0 {
		return fmt.Errorf("%w: empty category list", ErrInvalidCatalog)
	}
	for _, cat := range Categories {
		if len(cat.Products) == 0 {
			return fmt.Errorf("%w: category %q has no products", ErrInvalidCatalog, cat.Name)
		}
		if cat.PriceHi <= cat.PriceLo {
			return fmt.Errorf("%w: category %q has inverted price range", ErrInvalidCatalog, cat.Name)
		}
	}
	weightTables := []struct {
		name    string
		weights []float64
	}{
		{"payment", PaymentWeights},
		{"order status", OrderWeights},
		{"segment", SegmentWeights},
		{"age group", AgeWeights},
		{"customer status", CustomerStatusW},
		{"ticket priority", TicketPriorityW},
		{"ticket status", TicketStatusW},
		{"refund status", RefundWeights},
	}
	for _, wt := range weightTables {
		if len(wt.weights) == 0 || allZero(wt.weights) {
			return fmt.Errorf("%w: %s weights are all zero", ErrInvalidCatalog, wt.name)
		}
	}
	if !WindowEnd.After(WindowStart) {
		return fmt.Errorf("%w: window end %s is not after start %s",
			ErrInvalidCatalog, WindowEnd.Format("2006-01-02"), WindowStart.Format("2006-01-02"))
	}
	if CustomerCount <= 0 || OrderCount < 0 || TicketCount < 0 {
		return fmt.Errorf("%w: non-positive target counts", ErrInvalidCatalog)
	}
	if len(AgentNames) == 0 {
		return fmt.Errorf("%w: empty agent roster", ErrInvalidCatalog)
	}
	for _, prio := range TicketPriorities {
		rng, ok := ResolutionHours[prio]
		if !ok || rng[1] <= rng[0] {
			return fmt.Errorf("%w: bad resolution-hour range for priority %q", ErrInvalidCatalog, prio)
		}
	}
	return nil
}
