package domain

import "github.com/shopspring/decimal"

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var allSpeeds = []int{150, 500, 1000, 2000, 8000}

// DefaultPackages is the built-in broadband range.
func DefaultPackages() []Package {
	return []Package{
		{ID: "basic", Name: "150 Mbps", Speed: 150, Price: price("23.99")},
		{ID: "standard", Name: "500 Mbps", Speed: 500, Price: price("28.99"), SalePrice: sale("27.99")},
		{ID: "pro", Name: "1000 Mbps", Speed: 1000, Price: price("31.99"), SalePrice: sale("29.99")},
		{ID: "ultra", Name: "2000 Mbps", Speed: 2000, Price: price("49.99")},
		{ID: "max", Name: "8000 Mbps", Speed: 8000, Price: price("99.99")},
	}
}

// DefaultAddons is the built-in add-on range.
func DefaultAddons() []Addon {
	return []Addon{
		{ID: "youmesh", Name: "YouMesh", Price: price("7"), Description: "Boost coverage for 150/1000 packages", CompatibleSpeeds: []int{150, 500, 1000}},
		{ID: "youmesh-pro", Name: "YouMesh Pro", Price: price("14"), Description: "Only for 2000/8000 packages", CompatibleSpeeds: []int{2000, 8000}},
		{ID: "youphone", Name: "YouPhone", Price: price("3"), Description: "Unlimited evening and weekend UK landline calls", CompatibleSpeeds: allSpeeds},
		{ID: "youphone-plus", Name: "YouPhone Plus", Price: price("8"), Description: "Unlimited UK landline calls", CompatibleSpeeds: allSpeeds},
		{ID: "youphone-pro", Name: "YouPhone Pro", Price: price("12"), Description: "Unlimited calls to UK landline and mobiles", CompatibleSpeeds: allSpeeds},
	}
}

// DefaultTVPackages is the list of TV bundles agents can record.
func DefaultTVPackages() []TVPackage {
	return []TVPackage{
		{ID: "entertainment", Name: "Entertainment", Type: TVEntertainment, Description: "Popular entertainment channels including Sky Atlantic, Sky Max, and more"},
		{ID: "sports-basic", Name: "Sports Basic", Type: TVSports, Description: "Basic sports channels including Sky Sports News and Sky Sports Racing"},
		{ID: "sports-complete", Name: "Sports Complete", Type: TVSports, Description: "Full sports package including all Sky Sports channels and BT Sport"},
		{ID: "movies", Name: "Movies", Type: TVMovies, Description: "Access to Sky Cinema channels and extensive movie library"},
		{ID: "kids", Name: "Kids", Type: TVKids, Description: "Dedicated children's channels including Cartoon Network and Nickelodeon"},
	}
}
