package source

// PathLevel is one level of an item's category path, root first.
type PathLevel struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CatalogItem is one sellable item read from the source catalog.
type CatalogItem struct {
	SKU              string             `json:"sku"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	UnitPrice        float64            `json:"unit_price"`
	Currency         string             `json:"currency"`
	TaxRate          float64            `json:"tax_rate"`
	CategoryPath     []PathLevel        `json:"category_path"`
	StockByWarehouse map[string]float64 `json:"stock_by_warehouse"`
	Active           bool               `json:"active"`
	Visible          bool               `json:"visible"`
	Images           []string           `json:"images"`
}

// TotalStock sums the item's stock across all warehouses.
func (i CatalogItem) TotalStock() float64 {
	var total float64
	for _, qty := range i.StockByWarehouse {
		total += qty
	}
	return total
}

// CategoryNode is one node of the source category tree.
type CategoryNode struct {
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	Children []CategoryNode `json:"children"`
}
