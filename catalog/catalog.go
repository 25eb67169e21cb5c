// Package catalog loads the static product catalog the quote forms are
// driven by. A Catalog is read-only once loaded and safe to share.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"quote-desk/domain"
)

//go:embed products.yaml
var defaultProducts []byte

var ErrUnknownProduct = errors.New("unknown product")

type Catalog struct {
	order    []string
	products map[string]*domain.ProductSchema
}

type document struct {
	Products []domain.ProductSchema `yaml:"products"`
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultProducts)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Parse decodes and checks a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, errors.New("catalog has no products")
	}

	c := &Catalog{products: make(map[string]*domain.ProductSchema, len(doc.Products))}
	for i := range doc.Products {
		p := &doc.Products[i]
		if err := check(p); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Key, err)
		}
		if _, dup := c.products[p.Key]; dup {
			return nil, fmt.Errorf("product %q: duplicate key", p.Key)
		}
		if p.Currency.Code == "" {
			p.Currency = domain.KES
		}
		c.products[p.Key] = p
		c.order = append(c.order, p.Key)
	}
	return c, nil
}

// Product returns the schema for key.
func (c *Catalog) Product(key string) (*domain.ProductSchema, error) {
	p, ok := c.products[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, key)
	}
	return p, nil
}

// Products lists every product in catalog order.
func (c *Catalog) Products() []*domain.ProductSchema {
	out := make([]*domain.ProductSchema, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.products[k])
	}
	return out
}

func check(p *domain.ProductSchema) error {
	if p.Key == "" {
		return errors.New("missing key")
	}
	switch p.Family {
	case domain.FamilyMedical, domain.SeniorMedical, domain.StudentAccident:
	case domain.MotorCommercial, domain.PrivateMotor:
		if p.Motor == nil || len(p.Motor.Brackets) == 0 {
			return errors.New("motor product without value brackets")
		}
		for _, b := range p.Motor.Brackets {
			if _, err := decimal.NewFromString(b.Rate); err != nil {
				return fmt.Errorf("bracket rate %q: %w", b.Rate, err)
			}
		}
	default:
		return fmt.Errorf("unknown family %q", p.Family)
	}
	if len(p.Categories) == 0 {
		return errors.New("no categories")
	}

	seen := map[string]bool{}
	for _, cat := range p.Categories {
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category %q", cat.Name)
		}
		if cat.Requires != "" && !seen[cat.Requires] {
			return fmt.Errorf("category %q requires %q which is not declared before it", cat.Name, cat.Requires)
		}
		if cat.Derived != nil {
			if cat.Requires == "" {
				return fmt.Errorf("derived category %q has no parent", cat.Name)
			}
			for _, f := range []string{cat.Derived.PriceFactor, cat.Derived.CoverFactor} {
				if _, err := decimal.NewFromString(f); err != nil {
					return fmt.Errorf("category %q factor %q: %w", cat.Name, f, err)
				}
			}
		}
		if err := uniqueTierIDs(cat.Tiers); err != nil {
			return fmt.Errorf("category %q: %w", cat.Name, err)
		}
		for parent, tiers := range cat.TiersByParent {
			if err := uniqueTierIDs(tiers); err != nil {
				return fmt.Errorf("category %q under %q: %w", cat.Name, parent, err)
			}
		}
		seen[cat.Name] = true
	}
	for _, a := range p.AddOns {
		if a.Requires != "" && !seen[a.Requires] {
			return fmt.Errorf("add-on %q requires unknown category %q", a.ID, a.Requires)
		}
	}
	return nil
}

func uniqueTierIDs(tiers []domain.PlanTier) error {
	ids := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		if t.ID == "" {
			return fmt.Errorf("tier %q has no id", t.Name)
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate tier id %q", t.ID)
		}
		ids[t.ID] = true
	}
	return nil
}

// Load reads a catalog document from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}
