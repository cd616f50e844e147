// Package pricebook loads provider tariffs and the product catalog from a YAML
// file so pricing can change without a rebuild.
//
// A file may carry any of the top-level sections. Tariffs are merged into the
// built-in table (same key replaces). Packages, add-ons and TV bundles replace
// the built-in list of the same kind when the section is non-empty.
package pricebook

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	buyout "salesdesk_backend/internal/buyout/domain"
	catalog "salesdesk_backend/internal/catalog/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Pricebook is the resolved pricing data.
type Pricebook struct {
	Tariffs *buyout.Table
	Catalog *catalog.Catalog
}

// Default returns the built-in tariffs and catalog.
func Default() *Pricebook {
	return &Pricebook{Tariffs: buyout.DefaultTariffs(), Catalog: catalog.Default()}
}

type fileDTO struct {
	Tariffs    []tariffDTO    `yaml:"tariffs"`
	Packages   []packageDTO   `yaml:"packages"`
	Addons     []addonDTO     `yaml:"addons"`
	TVPackages []tvPackageDTO `yaml:"tvPackages"`
}

type tariffDTO struct {
	Key     string      `yaml:"key"`
	Name    string      `yaml:"name"`
	Aliases []string    `yaml:"aliases"`
	Formula *formulaDTO `yaml:"formula"`
}

type formulaDTO struct {
	GrossDeduction       float64 `yaml:"grossDeduction"`
	RemoveVAT            bool    `yaml:"removeVat"`
	SavingsPercent       float64 `yaml:"savingsPercent"`
	FlatMonthlyFee       float64 `yaml:"flatMonthlyFee"`
	EarlyPaymentDiscount float64 `yaml:"earlyPaymentDiscount"`
	ExtraDays            int64   `yaml:"extraDays"`
	ReapplyVAT           bool    `yaml:"reapplyVat"`
	Uplift               float64 `yaml:"uplift"`
}

type packageDTO struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Speed     int      `yaml:"speed"`
	Price     float64  `yaml:"price"`
	SalePrice *float64 `yaml:"salePrice"`
}

type addonDTO struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Price            float64 `yaml:"price"`
	Description      string  `yaml:"description"`
	CompatibleSpeeds []int   `yaml:"compatibleSpeeds"`
}

type tvPackageDTO struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// LoadFile reads a pricebook file. An empty path returns the defaults.
func LoadFile(path string) (*Pricebook, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricebook %s: %w", path, err)
	}
	pb, err := Load(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("pricebook %s: %w", path, err)
	}
	return pb, nil
}

// Load decodes a pricebook and merges it over the defaults.
func Load(r io.Reader) (*Pricebook, error) {
	var dto fileDTO
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode: %w", err)
	}

	tariffs := buyout.DefaultTariffs()
	for i, t := range dto.Tariffs {
		tariff, err := t.toDomain()
		if err != nil {
			return nil, fmt.Errorf("tariffs[%d]: %w", i, err)
		}
		if err := tariffs.Put(tariff); err != nil {
			return nil, fmt.Errorf("tariffs[%d]: %w", i, err)
		}
	}

	packages := catalog.DefaultPackages()
	if len(dto.Packages) > 0 {
		packages = packages[:0]
		for i, p := range dto.Packages {
			pkg, err := p.toDomain()
			if err != nil {
				return nil, fmt.Errorf("packages[%d]: %w", i, err)
			}
			packages = append(packages, pkg)
		}
	}

	addons := catalog.DefaultAddons()
	if len(dto.Addons) > 0 {
		addons = addons[:0]
		for i, a := range dto.Addons {
			if a.ID == "" || a.Price < 0 {
				return nil, fmt.Errorf("addons[%d]: id is required and price must not be negative", i)
			}
			addons = append(addons, catalog.Addon{
				ID:               a.ID,
				Name:             a.Name,
				Price:            decimal.NewFromFloat(a.Price),
				Description:      a.Description,
				CompatibleSpeeds: a.CompatibleSpeeds,
			})
		}
	}

	tv := catalog.DefaultTVPackages()
	if len(dto.TVPackages) > 0 {
		tv = tv[:0]
		for i, p := range dto.TVPackages {
			if !validTVType(p.Type) {
				return nil, fmt.Errorf("tvPackages[%d]: unknown type %q", i, p.Type)
			}
			tv = append(tv, catalog.TVPackage{ID: p.ID, Name: p.Name, Type: catalog.TVType(p.Type), Description: p.Description})
		}
	}

	return &Pricebook{
		Tariffs: tariffs,
		Catalog: catalog.New(packages, addons, tv),
	}, nil
}

func (t tariffDTO) toDomain() (buyout.Tariff, error) {
	if buyout.NormalizeProvider(t.Key) == "" {
		return buyout.Tariff{}, fmt.Errorf("key is required")
	}
	name := t.Name
	if name == "" {
		name = t.Key
	}
	formula := buyout.DefaultFormula
	if t.Formula != nil {
		f := t.Formula
		if f.SavingsPercent < 0 || f.SavingsPercent > 1 || f.EarlyPaymentDiscount < 0 || f.EarlyPaymentDiscount > 1 {
			return buyout.Tariff{}, fmt.Errorf("percentages must be within [0, 1]")
		}
		if f.ExtraDays < 0 || f.Uplift < 0 {
			return buyout.Tariff{}, fmt.Errorf("extraDays and uplift must not be negative")
		}
		formula = buyout.FeeFormula{
			GrossDeduction:       decimal.NewFromFloat(f.GrossDeduction),
			RemoveVAT:            f.RemoveVAT,
			SavingsPercent:       decimal.NewFromFloat(f.SavingsPercent),
			FlatMonthlyFee:       decimal.NewFromFloat(f.FlatMonthlyFee),
			EarlyPaymentDiscount: decimal.NewFromFloat(f.EarlyPaymentDiscount),
			ExtraDays:            f.ExtraDays,
			ReapplyVAT:           f.ReapplyVAT,
			Uplift:               decimal.NewFromFloat(f.Uplift),
		}
	}
	return buyout.Tariff{Key: t.Key, Name: name, Aliases: t.Aliases, Formula: formula}, nil
}

func (p packageDTO) toDomain() (catalog.Package, error) {
	if p.ID == "" {
		return catalog.Package{}, fmt.Errorf("id is required")
	}
	if p.Speed <= 0 || p.Price <= 0 {
		return catalog.Package{}, fmt.Errorf("speed and price must be positive")
	}
	pkg := catalog.Package{
		ID:    p.ID,
		Name:  p.Name,
		Speed: p.Speed,
		Price: decimal.NewFromFloat(p.Price),
	}
	if pkg.Name == "" {
		pkg.Name = fmt.Sprintf("%d Mbps", p.Speed)
	}
	if p.SalePrice != nil {
		if *p.SalePrice <= 0 {
			return catalog.Package{}, fmt.Errorf("salePrice must be positive")
		}
		sp := decimal.NewFromFloat(*p.SalePrice)
		pkg.SalePrice = &sp
	}
	return pkg, nil
}

func validTVType(t string) bool {
	for _, known := range catalog.TVTypes {
		if string(known) == t {
			return true
		}
	}
	return false
}
