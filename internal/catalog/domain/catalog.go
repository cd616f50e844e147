// Package domain holds the broadband product catalog and the pure lookups over
// it: package recommendation, price comparison and add-on compatibility.
package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Package is a broadband tier. Speed is in Mbps.
type Package struct {
	ID        string
	Name      string
	Speed     int
	Price     decimal.Decimal
	SalePrice *decimal.Decimal
}

// EffectivePrice is the sale price when one is set, otherwise the list price.
func (p Package) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// OnSale reports whether a sale price is set.
func (p Package) OnSale() bool { return p.SalePrice != nil }

// Addon is an optional extra sold alongside a package.
type Addon struct {
	ID               string
	Name             string
	Price            decimal.Decimal
	Description      string
	CompatibleSpeeds []int
}

// CompatibleWith reports whether the add-on can be sold with a package of the
// given speed.
func (a Addon) CompatibleWith(speed int) bool {
	for _, s := range a.CompatibleSpeeds {
		if s == speed {
			return true
		}
	}
	return false
}

// TVType groups TV bundles.
type TVType string

const (
	TVEntertainment TVType = "entertainment"
	TVSports        TVType = "sports"
	TVMovies        TVType = "movies"
	TVKids          TVType = "kids"
)

// TVTypes lists the bundle groups in display order.
var TVTypes = []TVType{TVEntertainment, TVSports, TVMovies, TVKids}

// TVPackage is a TV bundle the customer may already have.
type TVPackage struct {
	ID          string
	Name        string
	Type        TVType
	Description string
}

// Catalog is an immutable set of packages, add-ons and TV bundles. Packages
// are kept sorted by effective price, cheapest first.
type Catalog struct {
	packages   []Package
	addons     []Addon
	tvPackages []TVPackage
}

// New builds a catalog. The inputs are copied.
func New(packages []Package, addons []Addon, tv []TVPackage) *Catalog {
	c := &Catalog{
		packages:   append([]Package(nil), packages...),
		addons:     append([]Addon(nil), addons...),
		tvPackages: append([]TVPackage(nil), tv...),
	}
	sort.SliceStable(c.packages, func(i, j int) bool {
		return c.packages[i].EffectivePrice().LessThan(c.packages[j].EffectivePrice())
	})
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(DefaultPackages(), DefaultAddons(), DefaultTVPackages())
}

// Packages returns the packages sorted by effective price.
func (c *Catalog) Packages() []Package { return append([]Package(nil), c.packages...) }

// Addons returns every add-on.
func (c *Catalog) Addons() []Addon { return append([]Addon(nil), c.addons...) }

// TVPackages returns every TV bundle.
func (c *Catalog) TVPackages() []TVPackage { return append([]TVPackage(nil), c.tvPackages...) }

// PackageByID looks a package up by id.
func (c *Catalog) PackageByID(id string) (Package, bool) {
	for _, p := range c.packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// AddonByID looks an add-on up by id.
func (c *Catalog) AddonByID(id string) (Addon, bool) {
	for _, a := range c.addons {
		if a.ID == id {
			return a, true
		}
	}
	return Addon{}, false
}

// Recommend returns the package whose effective price is closest to the
// customer's current monthly price.
func (c *Catalog) Recommend(currentPrice decimal.Decimal) (Package, bool) {
	return Recommend(currentPrice, c.packages)
}

// Recommend picks the package minimising |EffectivePrice - currentPrice|. On a
// tie the earlier package wins. It returns false for an empty list.
func Recommend(currentPrice decimal.Decimal, packages []Package) (Package, bool) {
	if len(packages) == 0 {
		return Package{}, false
	}
	best := packages[0]
	bestDiff := best.EffectivePrice().Sub(currentPrice).Abs()
	for _, p := range packages[1:] {
		diff := p.EffectivePrice().Sub(currentPrice).Abs()
		if diff.LessThan(bestDiff) {
			best, bestDiff = p, diff
		}
	}
	return best, true
}

// Comparison annotates a package against the customer's current price.
// MonthlyDifference is current minus effective price, so positive means a
// saving.
type Comparison struct {
	Package           Package
	IsRecommended     bool
	IsCheaper         bool
	MonthlyDifference decimal.Decimal
}

// Compare annotates every package against currentPrice, in catalog order.
func (c *Catalog) Compare(currentPrice decimal.Decimal) []Comparison {
	recommended, ok := c.Recommend(currentPrice)
	out := make([]Comparison, 0, len(c.packages))
	for _, p := range c.packages {
		diff := currentPrice.Sub(p.EffectivePrice())
		out = append(out, Comparison{
			Package:           p,
			IsRecommended:     ok && p.ID == recommended.ID,
			IsCheaper:         diff.IsPositive(),
			MonthlyDifference: diff,
		})
	}
	return out
}

// CompatibleAddons returns the add-ons that can be sold with a package of the
// given speed.
func (c *Catalog) CompatibleAddons(speed int) []Addon {
	var out []Addon
	for _, a := range c.addons {
		if a.CompatibleWith(speed) {
			out = append(out, a)
		}
	}
	return out
}

// AddonsTotal sums the monthly price of the given add-ons. Unknown ids are
// ignored and each id counts once.
func (c *Catalog) AddonsTotal(ids []string) decimal.Decimal {
	seen := make(map[string]struct{}, len(ids))
	total := decimal.Zero
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if a, ok := c.AddonByID(id); ok {
			total = total.Add(a.Price)
		}
	}
	return total
}

// TVPackagesByType groups TV bundles by type.
func (c *Catalog) TVPackagesByType() map[TVType][]TVPackage {
	out := make(map[TVType][]TVPackage)
	for _, tv := range c.tvPackages {
		out[tv.Type] = append(out[tv.Type], tv)
	}
	return out
}

// FastestAbove returns the fastest package strictly faster than speed.
func (c *Catalog) FastestAbove(speed int) (Package, bool) {
	var best Package
	found := false
	for _, p := range c.packages {
		if p.Speed > speed && (!found || p.Speed > best.Speed) {
			best, found = p, true
		}
	}
	return best, found
}

// CheapestBelow returns the package with the lowest effective price strictly
// below price.
func (c *Catalog) CheapestBelow(price decimal.Decimal) (Package, bool) {
	var best Package
	found := false
	for _, p := range c.packages {
		eff := p.EffectivePrice()
		if eff.LessThan(price) && (!found || eff.LessThan(best.EffectivePrice())) {
			best, found = p, true
		}
	}
	return best, found
}
