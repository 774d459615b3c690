package catalog

import (
	"errors"
	"sort"
	"strings"

	"togetherbikes/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// SortKey selects the ordering of filtered product listings
type SortKey string

const (
	SortDefault   SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortName      SortKey = "name"
)

// Filter narrows and orders a product listing. Zero values mean "no
// constraint".
type Filter struct {
	Category domain.Category
	Brand    domain.Brand
	SaleOnly bool
	Query    string
	Sort     SortKey
}

// Store is the immutable in-memory catalog. All lookups are read-only and
// safe for concurrent use.
type Store struct {
	products []domain.Product
	byID     map[string]*domain.Product
	bySlug   map[string]*domain.Product
	services []domain.ServiceItem
	rentals  []domain.RentalPlan
	tours    []domain.TourPackage
	legal    map[string]domain.LegalDocument
	company  domain.CompanyInfo
	delivery domain.DeliveryRules
}

// NewStore loads the static catalog data and indexes it by id and slug.
func NewStore() *Store {
	s := &Store{
		products: products,
		byID:     make(map[string]*domain.Product, len(products)),
		bySlug:   make(map[string]*domain.Product, len(products)),
		services: services,
		rentals:  rentalPlans,
		tours:    tourPackages,
		legal:    legalDocuments,
		company:  companyInfo,
		delivery: deliveryRules,
	}
	for i := range s.products {
		p := &s.products[i]
		s.byID[p.ID] = p
		s.bySlug[p.Slug] = p
	}
	return s
}

// ByID returns the product with the given id.
func (s *Store) ByID(id string) (*domain.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

// BySlug returns the product with the given URL slug.
func (s *Store) BySlug(slug string) (*domain.Product, error) {
	if p, ok := s.bySlug[slug]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

// All returns every product in catalog order.
func (s *Store) All() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// List returns the products matching the filter, ordered by its sort key.
func (s *Store) List(f Filter) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Brand != "" && p.Brand != f.Brand {
			continue
		}
		if f.SaleOnly && !p.IsSale {
			continue
		}
		if query != "" && !matchesQuery(&p, query) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}

	return out
}

func matchesQuery(p *domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(string(p.Brand)), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

// Services returns the workshop price list.
func (s *Store) Services() []domain.ServiceItem { return s.services }

// Rentals returns the rental plans.
func (s *Store) Rentals() []domain.RentalPlan { return s.rentals }

// Tours returns the guided tour packages.
func (s *Store) Tours() []domain.TourPackage { return s.tours }

// Legal returns the legal document registered under the given key.
func (s *Store) Legal(key string) (domain.LegalDocument, bool) {
	doc, ok := s.legal[key]
	return doc, ok
}

// Company returns the store's contact and registration details.
func (s *Store) Company() domain.CompanyInfo { return s.company }

// Delivery returns the courier terms.
func (s *Store) Delivery() domain.DeliveryRules { return s.delivery }
