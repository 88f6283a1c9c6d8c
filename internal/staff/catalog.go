package staff

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
)

// Catalog input validation errors.
var (
	ErrCatalogNameRequired = errors.New("name is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrPriceNotPositive    = errors.New("price must be greater than zero")
)

// CatalogAPI is the slice of the API client the catalog controller drives.
type CatalogAPI interface {
	GetCategories(ctx context.Context) ([]api.Category, error)
	CreateCategory(ctx context.Context, req api.CategoryRequest) (*api.Category, error)
	UpdateCategory(ctx context.Context, id string, req api.CategoryRequest) (*api.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	GetItems(ctx context.Context) ([]api.Item, error)
	CreateItem(ctx context.Context, req api.ItemRequest) (*api.Item, error)
	UpdateItem(ctx context.Context, id string, req api.ItemRequest) (*api.Item, error)
	DeleteItem(ctx context.Context, id string) error

	UploadImage(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Catalog is the menu administration controller. It validates input locally
// before delegating, so obvious mistakes never reach the API.
type Catalog struct {
	api CatalogAPI
}

// NewCatalog wires the catalog controller.
func NewCatalog(a CatalogAPI) *Catalog {
	return &Catalog{api: a}
}

// Categories lists all categories.
func (c *Catalog) Categories(ctx context.Context) ([]api.Category, error) {
	return c.api.GetCategories(ctx)
}

// CreateCategory adds a category. Name is mandatory.
func (c *Catalog) CreateCategory(ctx context.Context, req api.CategoryRequest) (*api.Category, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, ErrCatalogNameRequired
	}
	return c.api.CreateCategory(ctx, req)
}

// UpdateCategory patches a category. An explicit empty name is rejected; a
// nil name keeps the current one.
func (c *Catalog) UpdateCategory(ctx context.Context, id string, req api.CategoryRequest) (*api.Category, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, ErrCatalogNameRequired
	}
	return c.api.UpdateCategory(ctx, id, req)
}

// DeleteCategory removes a category after explicit confirmation.
func (c *Catalog) DeleteCategory(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return c.api.DeleteCategory(ctx, id)
}

// Items lists all menu items.
func (c *Catalog) Items(ctx context.Context) ([]api.Item, error) {
	return c.api.GetItems(ctx)
}

// CreateItem adds a menu item. Name, category and a positive price are
// mandatory; a member price, when given, must also be positive.
func (c *Catalog) CreateItem(ctx context.Context, req api.ItemRequest) (*api.Item, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, ErrCatalogNameRequired
	}
	if req.CategoryID == nil || *req.CategoryID == "" {
		return nil, ErrCategoryRequired
	}
	if req.Price == nil || !req.Price.IsPositive() {
		return nil, ErrPriceNotPositive
	}
	if req.MemberPrice != nil && !req.MemberPrice.IsPositive() {
		return nil, ErrPriceNotPositive
	}
	return c.api.CreateItem(ctx, req)
}

// UpdateItem patches a menu item, validating only the fields present.
func (c *Catalog) UpdateItem(ctx context.Context, id string, req api.ItemRequest) (*api.Item, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, ErrCatalogNameRequired
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return nil, ErrPriceNotPositive
	}
	if req.MemberPrice != nil && !req.MemberPrice.IsPositive() {
		return nil, ErrPriceNotPositive
	}
	return c.api.UpdateItem(ctx, id, req)
}

// DeleteItem removes a menu item after explicit confirmation.
func (c *Catalog) DeleteItem(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return c.api.DeleteItem(ctx, id)
}

// UploadItemImage uploads the image and returns the hosted URL to store on
// the item.
func (c *Catalog) UploadItemImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	if filename == "" {
		return "", errors.New("filename is required")
	}
	return c.api.UploadImage(ctx, filename, content)
}

// PricePtr is a convenience for building requests from literals.
func PricePtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// StrPtr is a convenience for building requests from literals.
func StrPtr(s string) *string { return &s }

// BoolPtr is a convenience for building requests from literals.
func BoolPtr(b bool) *bool { return &b }
