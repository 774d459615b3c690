package domain

// Brand identifies a product manufacturer carried by the store.
type Brand string

const (
	BrandOrbea     Brand = "Orbea"
	BrandSantaCruz Brand = "Santa Cruz"
	BrandGiant     Brand = "Giant"
	BrandTogether  Brand = "2GETHER"
	BrandMerch     Brand = "Merch"
)

// Category identifies a product category in the catalog
type Category string

const (
	CategoryMountain    Category = "mountain"
	CategoryRoad        Category = "road"
	CategoryElectric    Category = "electric"
	CategoryKids        Category = "kids"
	CategoryCity        Category = "city"
	CategoryGear        Category = "gear"
	CategoryMerchandise Category = "merchandise"
)

// Product represents a catalog entry. Products are loaded once at startup
// and never mutated afterwards.
type Product struct {
	ID            string            `json:"id"`
	Slug          string            `json:"slug"`
	Brand         Brand             `json:"brand"`
	Category      Category          `json:"category"`
	Name          string            `json:"name"`
	Price         float64           `json:"price"`
	OriginalPrice float64           `json:"original_price,omitempty"`
	Images        []string          `json:"images"`
	Sizes         []string          `json:"sizes"`
	Description   string            `json:"description"`
	Specs         map[string]string `json:"specs"`
	InStock       bool              `json:"in_stock"`
	IsSale        bool              `json:"is_sale,omitempty"`
}

// HasSize reports whether the product is offered in the given size label.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// ServiceItem is one row of the workshop price list
type ServiceItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// RentalTier is one duration/price step of a rental plan
type RentalTier struct {
	Duration string  `json:"duration"`
	Price    float64 `json:"price"`
}

// RentalPlan describes a rentable bike class with its pricing steps
type RentalPlan struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Tiers       []RentalTier `json:"tiers"`
}

// TourPackage describes a guided off-road tour offering
type TourPackage struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Prices      []RentalTier `json:"prices"`
	Suitability string       `json:"suitability"`
	Image       string       `json:"image"`
}

// LegalDocument holds a titled block of legal text, one paragraph per entry
type LegalDocument struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// CompanyInfo holds the store's contact and registration details
type CompanyInfo struct {
	Name         string `json:"name"`
	RegistryID   string `json:"registry_id"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	PhoneBooking string `json:"phone_booking"`
	Email        string `json:"email"`
	StoreHours   string `json:"store_hours"`
	SupportHours string `json:"support_hours"`
	Location     string `json:"location"`
}

// DeliveryRules holds the courier terms shown at checkout
type DeliveryRules struct {
	Partner       string  `json:"partner"`
	CostOffice    float64 `json:"cost_office"`
	CostAddress   float64 `json:"cost_address"`
	FreeThreshold float64 `json:"free_threshold"`
	DeliveryDays  string  `json:"delivery_days"`
}
