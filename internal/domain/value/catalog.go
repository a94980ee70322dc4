package value

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gb_market/internal/domain"
	"gb_market/internal/domain/entity"
	"gb_market/pkg/errcodes"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Seller struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type ActivityTemplate struct {
	Type    entity.ActivityType `yaml:"type"`
	Message string              `yaml:"message"`
	Impact  entity.Urgency      `yaml:"impact"`
}

// Catalog holds the fixed name pools the generators draw from.
type Catalog struct {
	Products   []string           `yaml:"products"`
	Sellers    []Seller           `yaml:"sellers"`
	Categories []string           `yaml:"categories"`
	Buyers     []string           `yaml:"buyers"`
	Activities []ActivityTemplate `yaml:"activities"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}

	return c
}

// LoadCatalog reads a catalog file, the embedded one is used for an empty path.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	return ParseCatalog(b)
}

func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog

	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, domain.WrapError(err, errcodes.CatalogInvalid, "catalog is not valid yaml")
	}

	if err := c.validate(); err != nil {
		return Catalog{}, err
	}

	return c, nil
}

func (c Catalog) validate() error {
	switch {
	case len(c.Products) == 0:
		return domain.NewError(errcodes.CatalogInvalid, "catalog has no products")
	case len(c.Sellers) == 0:
		return domain.NewError(errcodes.CatalogInvalid, "catalog has no sellers")
	case len(c.Categories) == 0:
		return domain.NewError(errcodes.CatalogInvalid, "catalog has no categories")
	case len(c.Buyers) == 0:
		return domain.NewError(errcodes.CatalogInvalid, "catalog has no buyers")
	case len(c.Activities) == 0:
		return domain.NewError(errcodes.CatalogInvalid, "catalog has no activity templates")
	}

	return nil
}
