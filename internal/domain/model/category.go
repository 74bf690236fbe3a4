package model

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// LoanCategory – static reference data
// ---------------------------------------------------------------------------

// LoanCategory describes one loan product: its subcategories, the optional
// amount ceiling and the longest repayment period.
type LoanCategory struct {
	name          string
	subcategories []string
	maxAmount     decimal.Decimal
	hasMaxAmount  bool
	periodYears   int
}

// NewLoanCategory builds a category. A nil maxAmount means unbounded.
func NewLoanCategory(name string, subcategories []string, maxAmount *decimal.Decimal, periodYears int) (LoanCategory, error) {
	if name == "" {
		return LoanCategory{}, fmt.Errorf("category name is required")
	}
	if len(subcategories) == 0 {
		return LoanCategory{}, fmt.Errorf("category %q needs at least one subcategory", name)
	}
	if periodYears <= 0 {
		return LoanCategory{}, fmt.Errorf("category %q: period years must be positive", name)
	}
	c := LoanCategory{
		name:          name,
		subcategories: slices.Clone(subcategories),
		periodYears:   periodYears,
	}
	if maxAmount != nil {
		if !maxAmount.IsPositive() {
			return LoanCategory{}, fmt.Errorf("category %q: max amount must be positive", name)
		}
		c.maxAmount = *maxAmount
		c.hasMaxAmount = true
	}
	return c, nil
}

func (c LoanCategory) Name() string            { return c.name }
func (c LoanCategory) Subcategories() []string { return slices.Clone(c.subcategories) }
func (c LoanCategory) PeriodYears() int        { return c.periodYears }
func (c LoanCategory) MaxTermMonths() int      { return c.periodYears * 12 }

// MaxAmount returns the ceiling and whether one applies.
func (c LoanCategory) MaxAmount() (decimal.Decimal, bool) { return c.maxAmount, c.hasMaxAmount }

// HasSubcategory reports whether sub belongs to this category.
func (c LoanCategory) HasSubcategory(sub string) bool {
	return slices.Contains(c.subcategories, sub)
}

// ValidateAmount rejects amounts above the ceiling.
func (c LoanCategory) ValidateAmount(amount decimal.Decimal) error {
	if c.hasMaxAmount && amount.GreaterThan(c.maxAmount) {
		return NewValidationError("Loan amount exceeds maximum limit of PKR %s", c.maxAmount.String())
	}
	return nil
}

// ValidateTerm rejects terms longer than the category allows.
func (c LoanCategory) ValidateTerm(termMonths int) error {
	if termMonths > c.MaxTermMonths() {
		return NewValidationError("Loan period exceeds maximum of %d months", c.MaxTermMonths())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// Catalog is the immutable, ordered set of loan categories.
type Catalog struct {
	categories []LoanCategory
	byName     map[string]int
}

// NewCatalog indexes the given categories. Names must be unique.
func NewCatalog(categories ...LoanCategory) (Catalog, error) {
	byName := make(map[string]int, len(categories))
	for i, c := range categories {
		if _, dup := byName[c.name]; dup {
			return Catalog{}, fmt.Errorf("duplicate loan category %q", c.name)
		}
		byName[c.name] = i
	}
	return Catalog{categories: slices.Clone(categories), byName: byName}, nil
}

// DefaultCatalog returns the Qarze Hasana product line.
func DefaultCatalog() Catalog {
	limit := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	categories := []LoanCategory{
		mustCategory("Wedding Loans", []string{"Valima", "Furniture", "Valima Food", "Jahez"}, limit(500_000), 3),
		mustCategory("Home Construction Loans", []string{"Structure", "Finishing", "Loan"}, limit(1_000_000), 5),
		mustCategory("Business Startup Loans", []string{"Buy Stall", "Advance Rent for Shop", "Shop Assets", "Shop Machinery"}, limit(1_000_000), 5),
		mustCategory("Education Loans", []string{"University Fees", "Child Fees Loan"}, nil, 4),
	}
	catalog, err := NewCatalog(categories...)
	if err != nil {
		panic(err)
	}
	return catalog
}

func mustCategory(name string, subs []string, maxAmount *decimal.Decimal, years int) LoanCategory {
	c, err := NewLoanCategory(name, subs, maxAmount, years)
	if err != nil {
		panic(err)
	}
	return c
}

// Categories returns the categories in catalog order.
func (c Catalog) Categories() []LoanCategory { return slices.Clone(c.categories) }

// Lookup finds a category by exact name.
func (c Catalog) Lookup(name string) (LoanCategory, error) {
	i, ok := c.byName[name]
	if !ok {
		return LoanCategory{}, NewValidationError("Invalid loan category")
	}
	return c.categories[i], nil
}
