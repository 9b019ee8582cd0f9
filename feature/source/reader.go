package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const itemColumns = `
	s.STOK_KODU,
	s.STOK_ADI,
	s.ACIKLAMA,
	s.SATIS_FIYATI1,
	s.DOVIZ_TURU,
	s.KDV_ORANI,
	s.AKTIF,
	s.WEBDE_GORUNSUN,
	s.GRUP_KODU,
	s.GRUP_ARA_KODU,
	s.GRUP_ALT_KODU,
	g.GRUP_ADI AS ANA_GRUP,
	ga.GRUP_ADI AS ARA_GRUP,
	galt.GRUP_ADI AS ALT_GRUP,
	s.RESIM`

const itemJoins = `
	FROM STOKLAR s
	LEFT JOIN GRUP g ON s.GRUP_KODU = g.BLKODU
	LEFT JOIN GRUP_ARA ga ON s.GRUP_ARA_KODU = ga.BLKODU
	LEFT JOIN GRUP_ALT galt ON s.GRUP_ALT_KODU = galt.BLKODU`

// Reader reads catalog items and categories from the legacy database.
// Legacy text columns are fixed width, so every string is trimmed on scan.
type Reader struct {
	db     *gorm.DB
	cfg    Config
	logger *zap.Logger
}

// NewReader creates a catalog reader.
func NewReader(db *gorm.DB, cfg Config, logger *zap.Logger) *Reader {
	return &Reader{db: db, cfg: cfg, logger: logger}
}

// ListActiveItems returns every active, web visible item ordered by SKU,
// with per warehouse stock attached.
func (r *Reader) ListActiveItems(ctx context.Context) ([]CatalogItem, error) {
	query := "SELECT " + itemColumns + itemJoins + `
	WHERE s.AKTIF = 1 AND s.WEBDE_GORUNSUN = 1
	ORDER BY s.STOK_KODU`

	rows, err := r.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog items: %w", err)
	}
	defer rows.Close()

	var items []CatalogItem
	for rows.Next() {
		item, err := scanItem(rows, r.cfg.Currency)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog items: %w", err)
	}

	stock, err := r.loadStock(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].StockByWarehouse = stock[items[i].SKU]
	}

	r.logger.Info("loaded catalog items", zap.Int("count", len(items)))
	return items, nil
}

// GetItem returns a single item by SKU, or nil when it does not exist.
func (r *Reader) GetItem(ctx context.Context, sku string) (*CatalogItem, error) {
	query := "SELECT " + itemColumns + itemJoins + `
	WHERE s.STOK_KODU = ?`

	rows, err := r.db.WithContext(ctx).Raw(query, sku).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog item %s: %w", sku, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	item, err := scanItem(rows, r.cfg.Currency)
	if err != nil {
		return nil, err
	}

	stock, err := r.loadItemStock(ctx, sku)
	if err != nil {
		return nil, err
	}
	item.StockByWarehouse = stock
	return &item, nil
}

// loadStock sums signed stock movements per item and warehouse. Movements
// of the configured inbound type add, all other types subtract. Warehouses
// that net out to zero are dropped.
func (r *Reader) loadStock(ctx context.Context) (map[string]map[string]float64, error) {
	query := `
	SELECT sh.STOK_KODU, sh.DEPO_ADI,
		SUM(CASE WHEN sh.TUTAR_TURU = ? THEN sh.MIKTARI ELSE -sh.MIKTARI END) AS KALAN
	FROM STOKHR sh
	INNER JOIN DEPO d ON d.DEPO_ADI = sh.DEPO_ADI AND d.AKTIF = 1
	WHERE sh.SILINDI = 0
	GROUP BY sh.STOK_KODU, sh.DEPO_ADI`

	rows, err := r.db.WithContext(ctx).Raw(query, r.cfg.InboundMovementType).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	stock := make(map[string]map[string]float64)
	for rows.Next() {
		var sku, warehouse string
		var qty sql.NullFloat64
		if err := rows.Scan(&sku, &warehouse, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		if !qty.Valid || qty.Float64 == 0 {
			continue
		}
		sku = strings.TrimSpace(sku)
		if stock[sku] == nil {
			stock[sku] = make(map[string]float64)
		}
		stock[sku][strings.TrimSpace(warehouse)] = qty.Float64
	}
	return stock, rows.Err()
}

func (r *Reader) loadItemStock(ctx context.Context, sku string) (map[string]float64, error) {
	query := `
	SELECT sh.DEPO_ADI,
		SUM(CASE WHEN sh.TUTAR_TURU = ? THEN sh.MIKTARI ELSE -sh.MIKTARI END) AS KALAN
	FROM STOKHR sh
	INNER JOIN DEPO d ON d.DEPO_ADI = sh.DEPO_ADI AND d.AKTIF = 1
	WHERE sh.SILINDI = 0 AND sh.STOK_KODU = ?
	GROUP BY sh.DEPO_ADI`

	rows, err := r.db.WithContext(ctx).Raw(query, r.cfg.InboundMovementType, sku).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query stock for %s: %w", sku, err)
	}
	defer rows.Close()

	stock := make(map[string]float64)
	for rows.Next() {
		var warehouse string
		var qty sql.NullFloat64
		if err := rows.Scan(&warehouse, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		if !qty.Valid || qty.Float64 == 0 {
			continue
		}
		stock[strings.TrimSpace(warehouse)] = qty.Float64
	}
	return stock, rows.Err()
}

// ListCategories returns the web visible category tree: main groups at the
// root, middle groups linked by parent name, sub groups linked by both
// ancestor names. Levels are ordered by name.
func (r *Reader) ListCategories(ctx context.Context) ([]CategoryNode, error) {
	type groupRow struct {
		code    string
		name    string
		parent  string
		parent2 string
	}

	scanGroups := func(query string, args []any, withParents int) ([]groupRow, error) {
		rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
		if err != nil {
			return nil, fmt.Errorf("failed to query category groups: %w", err)
		}
		defer rows.Close()

		var groups []groupRow
		for rows.Next() {
			var g groupRow
			var code sql.NullInt64
			var name, parent, parent2 sql.NullString
			dest := []any{&code, &name}
			if withParents >= 1 {
				dest = append(dest, &parent)
			}
			if withParents >= 2 {
				dest = append(dest, &parent2)
			}
			if err := rows.Scan(dest...); err != nil {
				return nil, fmt.Errorf("failed to scan category group: %w", err)
			}
			g.code = fmt.Sprintf("%d", code.Int64)
			g.name = strings.TrimSpace(name.String)
			g.parent = strings.TrimSpace(parent.String)
			g.parent2 = strings.TrimSpace(parent2.String)
			groups = append(groups, g)
		}
		return groups, rows.Err()
	}

	mains, err := scanGroups(`
	SELECT BLKODU, GRUP_ADI FROM GRUP
	WHERE WEBDE_GORUNSUN = 1 ORDER BY GRUP_ADI`, nil, 0)
	if err != nil {
		return nil, err
	}
	middles, err := scanGroups(`
	SELECT BLKODU, GRUP_ADI, UST_GRUP_ADI FROM GRUP_ARA
	WHERE WEBDE_GORUNSUN = 1 ORDER BY GRUP_ADI`, nil, 1)
	if err != nil {
		return nil, err
	}
	subs, err := scanGroups(`
	SELECT BLKODU, GRUP_ADI, UST_GRUP_ADI, UST_GRUP_ADI2 FROM GRUP_ALT
	WHERE WEBDE_GORUNSUN = 1 ORDER BY GRUP_ADI`, nil, 2)
	if err != nil {
		return nil, err
	}

	tree := make([]CategoryNode, 0, len(mains))
	for _, m := range mains {
		root := CategoryNode{Code: m.code, Name: m.name}
		for _, mid := range middles {
			if mid.parent != m.name {
				continue
			}
			child := CategoryNode{Code: mid.code, Name: mid.name}
			for _, sub := range subs {
				if sub.parent == m.name && sub.parent2 == mid.name {
					child.Children = append(child.Children, CategoryNode{Code: sub.code, Name: sub.name})
				}
			}
			root.Children = append(root.Children, child)
		}
		tree = append(tree, root)
	}
	return tree, nil
}

func scanItem(rows *sql.Rows, defaultCurrency string) (CatalogItem, error) {
	var (
		sku, name, description      sql.NullString
		price, taxRate              sql.NullFloat64
		currency                    sql.NullString
		active, visible             sql.NullInt64
		groupCode, midCode, subCode sql.NullInt64
		groupName, midName, subName sql.NullString
		image                       sql.NullString
	)

	err := rows.Scan(
		&sku, &name, &description, &price, &currency, &taxRate,
		&active, &visible,
		&groupCode, &midCode, &subCode,
		&groupName, &midName, &subName,
		&image,
	)
	if err != nil {
		return CatalogItem{}, fmt.Errorf("failed to scan catalog item: %w", err)
	}

	item := CatalogItem{
		SKU:         strings.TrimSpace(sku.String),
		Name:        strings.TrimSpace(name.String),
		Description: strings.TrimSpace(description.String),
		UnitPrice:   price.Float64,
		Currency:    strings.TrimSpace(currency.String),
		TaxRate:     taxRate.Float64,
		Active:      active.Int64 == 1,
		Visible:     visible.Int64 == 1,
	}
	if item.Currency == "" {
		item.Currency = defaultCurrency
	}

	levels := []struct {
		code sql.NullInt64
		name sql.NullString
	}{
		{groupCode, groupName},
		{midCode, midName},
		{subCode, subName},
	}
	for _, l := range levels {
		label := strings.TrimSpace(l.name.String)
		if !l.code.Valid || l.code.Int64 == 0 || label == "" {
			break
		}
		item.CategoryPath = append(item.CategoryPath, PathLevel{
			Code: fmt.Sprintf("%d", l.code.Int64),
			Name: label,
		})
	}

	if path := strings.TrimSpace(image.String); path != "" {
		item.Images = append(item.Images, path)
	}
	return item, nil
}
