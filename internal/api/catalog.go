package api

import "context"

// FetchProducts retrieves the full product catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProduct retrieves a single product by id.
func (c *Client) FetchProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.get(ctx, "/products/"+id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchCategories retrieves the category list.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchBrands retrieves the brand list.
func (c *Client) FetchBrands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	if err := c.get(ctx, "/brands", &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// CreateProduct adds a product to the catalog. Requires an admin session.
func (c *Client) CreateProduct(ctx context.Context, product Product) (*Product, error) {
	var created Product
	if err := c.post(ctx, "/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateBrand registers a brand. Requires an admin session.
func (c *Client) CreateBrand(ctx context.Context, name string) (*Brand, error) {
	var created Brand
	if err := c.post(ctx, "/brands", Brand{Name: name}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteBrand removes a brand. Requires an admin session.
func (c *Client) DeleteBrand(ctx context.Context, id string) error {
	return c.delete(ctx, "/brands/"+id, nil, nil)
}
