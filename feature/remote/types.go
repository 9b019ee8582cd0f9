package remote

// CategoryRef links a product to a remote category by ID.
type CategoryRef struct {
	ID int64 `json:"id"`
}

// ImageRef attaches an image to a product by URL.
type ImageRef struct {
	Src string `json:"src"`
}

// Item is a product as the remote API returns it.
type Item struct {
	ID            int64         `json:"id"`
	SKU           string        `json:"sku"`
	RegularPrice  string        `json:"regular_price"`
	StockQuantity int           `json:"stock_quantity"`
	Status        string        `json:"status"`
	Categories    []CategoryRef `json:"categories"`
}

// CategoryIDs returns the IDs of the item's categories.
func (i Item) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(i.Categories))
	for _, c := range i.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// ProductPayload is the wire form for creating or updating a product.
// Prices travel as decimal strings.
type ProductPayload struct {
	Name          string        `json:"name,omitempty"`
	SKU           string        `json:"sku,omitempty"`
	Description   string        `json:"description,omitempty"`
	RegularPrice  string        `json:"regular_price,omitempty"`
	ManageStock   bool          `json:"manage_stock"`
	StockQuantity int           `json:"stock_quantity"`
	Status        string        `json:"status,omitempty"`
	Categories    []CategoryRef `json:"categories,omitempty"`
	Images        []ImageRef    `json:"images,omitempty"`
}

// BatchItem is one entry of a batch stock/price update.
type BatchItem struct {
	ID            int64  `json:"id"`
	RegularPrice  string `json:"regular_price"`
	ManageStock   bool   `json:"manage_stock"`
	StockQuantity int    `json:"stock_quantity"`
}

// Category is a product category as the remote API returns it.
type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Parent int64  `json:"parent"`
}
