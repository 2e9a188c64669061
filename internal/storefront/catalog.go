// Package storefront serves the static product and stone catalogs of the
// cost calculator.
package storefront

import (
	_ "embed"
	"errors"
	"fmt"

	"edenstone/internal/utils"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSlug   = errors.New("duplicate product slug")
)

type Product struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Image       string   `yaml:"image" json:"image"`
	Features    []string `yaml:"features" json:"features"`
	Popular     bool     `yaml:"popular" json:"popular"`
	Slug        string   `yaml:"slug" json:"slug"`
}

type Stone struct {
	Title       string `yaml:"title" json:"title"`
	Slug        string `yaml:"-" json:"slug"`
	Image       string `yaml:"image" json:"image"`
	Description string `yaml:"description" json:"description"`
	Popular     bool   `yaml:"popular" json:"popular"`
}

type content struct {
	Products []Product `yaml:"products"`
	Stones   []Stone   `yaml:"stones"`
}

// Catalog is immutable after construction.
type Catalog struct {
	products []Product
	stones   []Stone
	bySlug   map[string]int
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultContent)
}

// Parse builds a catalog from YAML. Product slugs are normalised with
// utils.Slugify and must be unique; stone slugs come from their titles.
func Parse(data []byte) (*Catalog, error) {
	var c content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse storefront content: %w", err)
	}

	cat := &Catalog{
		products: make([]Product, 0, len(c.Products)),
		stones:   make([]Stone, 0, len(c.Stones)),
		bySlug:   make(map[string]int, len(c.Products)),
	}

	for _, p := range c.Products {
		p.Slug = utils.Slugify(p.Slug)
		if p.Slug == "" {
			p.Slug = utils.Slugify(p.Title)
		}
		if _, dup := cat.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, p.Slug)
		}
		if p.Features == nil {
			p.Features = []string{}
		}
		cat.bySlug[p.Slug] = len(cat.products)
		cat.products = append(cat.products, p)
	}

	for _, s := range c.Stones {
		s.Slug = utils.Slugify(s.Title)
		cat.stones = append(cat.stones, s)
	}

	return cat, nil
}

func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Product(slug string) (Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// StonesFor lists the stones offered for a product. Every product currently
// offers the full stone list.
func (c *Catalog) StonesFor(slug string) (Product, []Stone, error) {
	p, err := c.Product(slug)
	if err != nil {
		return Product{}, nil, err
	}
	out := make([]Stone, len(c.stones))
	copy(out, c.stones)
	return p, out, nil
}
