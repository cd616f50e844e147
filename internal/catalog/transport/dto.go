package transport

// Packages

type PackageResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Speed          int      `json:"speed"`
	Price          float64  `json:"price"`
	SalePrice      *float64 `json:"salePrice,omitempty"`
	EffectivePrice float64  `json:"effectivePrice"`
}

type PackageListResponse struct {
	Items []PackageResponse `json:"items"`
}

// Add-ons

type ListAddonsRequest struct {
	Speed int `form:"speed" validate:"omitempty,min=1"`
}

type AddonResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Description      string  `json:"description"`
	CompatibleSpeeds []int   `json:"compatibleSpeeds"`
}

type AddonListResponse struct {
	Items []AddonResponse `json:"items"`
}

// TV

type TVPackageResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type TVGroupResponse struct {
	Type  string              `json:"type"`
	Items []TVPackageResponse `json:"items"`
}

type TVPackageListResponse struct {
	Groups []TVGroupResponse `json:"groups"`
}

// Recommendation and comparison

type PriceRequest struct {
	CurrentPrice float64 `json:"currentPrice" validate:"min=0"`
}

type RecommendResponse struct {
	Found   bool             `json:"found"`
	Package *PackageResponse `json:"package,omitempty"`
}

type ComparisonRow struct {
	Package           PackageResponse `json:"package"`
	IsRecommended     bool            `json:"isRecommended"`
	IsCheaper         bool            `json:"isCheaper"`
	MonthlyDifference float64         `json:"monthlyDifference"`
}

type CompareResponse struct {
	CurrentPrice float64         `json:"currentPrice"`
	Rows         []ComparisonRow `json:"rows"`
}

// Quote totals a package plus add-ons for the summary screen.

type QuoteRequest struct {
	PackageID string   `json:"packageId" validate:"required,max=50"`
	AddonIDs  []string `json:"addonIds" validate:"max=20,dive,max=50"`
}

type QuoteResponse struct {
	Package      PackageResponse `json:"package"`
	Addons       []AddonResponse `json:"addons"`
	AddonsTotal  float64         `json:"addonsTotal"`
	MonthlyTotal float64         `json:"monthlyTotal"`
}

// Speed check

type SpeedCheckRequest struct {
	EstimatedSpeed float64 `json:"estimatedSpeed" validate:"min=0,max=100000"`
	ActualSpeed    float64 `json:"actualSpeed" validate:"min=0,max=100000"`
}

type SpeedCheckResponse struct {
	EstimatedSpeed float64 `json:"estimatedSpeed"`
	ActualSpeed    float64 `json:"actualSpeed"`
	DropPercent    float64 `json:"dropPercent"`
	Significant    bool    `json:"significant"`
}
