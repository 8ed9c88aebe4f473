package testmodule

import (
	"errors"

	"github.com/schemagen-labs/schemagen/pkg/schema"
)

// BlogContext is a schema source with blogs, posts, and authors.
type BlogContext struct {
	Args   []string
	Closed bool
}

// Model implements schema.Source.
func (c *BlogContext) Model() *schema.Model {
	return BlogModel()
}

// Close records that the source was released.
func (c *BlogContext) Close() error {
	c.Closed = true
	return nil
}

// BlogContextFactory is a well-formed provider.
type BlogContextFactory struct{}

// CreateSource implements provider.Factory[*BlogContext].
func (f *BlogContextFactory) CreateSource(args []string) (*BlogContext, error) {
	return &BlogContext{Args: args}, nil
}

// ShopDbContext is a second schema source.
type ShopDbContext struct{}

// Model implements schema.Source.
func (ShopDbContext) Model() *schema.Model {
	return &schema.Model{
		DefaultSchema: "shop",
		Tables: []schema.Table{{
			Name:   "Orders",
			GoType: "Order",
			Columns: []schema.Column{
				{Name: "Id", Type: "integer", ValueGenerated: "OnAdd"},
				{Name: "Total", Type: "numeric(18,2)"},
			},
			PrimaryKey: &schema.Key{Name: "PK_Orders", Columns: []string{"Id"}},
		}},
	}
}

// ShopFactory uses the single-result legacy form.
type ShopFactory struct{}

// CreateSource returns a source without an error result.
func (ShopFactory) CreateSource(args []string) ShopDbContext {
	return ShopDbContext{}
}

// FailingContext is the target of FailingFactory.
type FailingContext struct{}

// Model implements schema.Source.
func (FailingContext) Model() *schema.Model { return &schema.Model{} }

// ErrConnection is returned by FailingFactory.
var ErrConnection = errors.New("connection string not configured")

// FailingFactory always fails to create its source.
type FailingFactory struct{}

// CreateSource always returns ErrConnection.
func (FailingFactory) CreateSource(args []string) (*FailingContext, error) {
	return nil, ErrConnection
}

// PanickingContext is the target of PanickingFactory.
type PanickingContext struct{}

// Model implements schema.Source.
func (PanickingContext) Model() *schema.Model { return &schema.Model{} }

// PanickingFactory panics when invoked.
type PanickingFactory struct{}

// CreateSource panics.
func (PanickingFactory) CreateSource(args []string) (*PanickingContext, error) {
	panic("factory exploded")
}

// NilContext is the target of NilFactory.
type NilContext struct{}

// Model implements schema.Source.
func (*NilContext) Model() *schema.Model { return &schema.Model{} }

// NilFactory returns a nil source and no error.
type NilFactory struct{}

// CreateSource returns nil.
func (NilFactory) CreateSource(args []string) (*NilContext, error) {
	return nil, nil
}

// InitContext is the target of InitFactory.
type InitContext struct {
	Prefix string
}

// Model implements schema.Source.
func (c *InitContext) Model() *schema.Model { return &schema.Model{DefaultSchema: c.Prefix} }

// InitFactory needs Init before CreateSource.
type InitFactory struct {
	prefix string
}

// Init implements provider.Initializer.
func (f *InitFactory) Init() error {
	f.prefix = "init"
	return nil
}

// CreateSource returns a source built from state set by Init.
func (f *InitFactory) CreateSource(args []string) (*InitContext, error) {
	if f.prefix == "" {
		return nil, errors.New("not initialized")
	}
	return &InitContext{Prefix: f.prefix}, nil
}

// BrokenInitFactory fails in Init.
type BrokenInitFactory struct{}

// Init implements provider.Initializer.
func (BrokenInitFactory) Init() error {
	return errors.New("missing configuration")
}

// CreateSource is never reached.
func (BrokenInitFactory) CreateSource(args []string) (*InitContext, error) {
	return &InitContext{}, nil
}

// Plain does not implement schema.Source.
type Plain struct{}

// NotSourceFactory creates something that is not a schema source.
type NotSourceFactory struct{}

// CreateSource returns a non-source.
func (NotSourceFactory) CreateSource(args []string) (*Plain, error) {
	return &Plain{}, nil
}

// WrongArgsFactory has a CreateSource method with the wrong parameters.
type WrongArgsFactory struct{}

// CreateSource takes an int instead of arguments.
func (WrongArgsFactory) CreateSource(n int) (*BlogContext, error) {
	return &BlogContext{}, nil
}

// Helper has no CreateSource method.
type Helper struct{}
