package source

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	assert.NoError(t, err)
	return db, mock
}

func itemColumnsForTest() []string {
	return []string{
		"STOK_KODU", "STOK_ADI", "ACIKLAMA", "SATIS_FIYATI1", "DOVIZ_TURU",
		"KDV_ORANI", "AKTIF", "WEBDE_GORUNSUN",
		"GRUP_KODU", "GRUP_ARA_KODU", "GRUP_ALT_KODU",
		"ANA_GRUP", "ARA_GRUP", "ALT_GRUP", "RESIM",
	}
}

func TestListActiveItems(t *testing.T) {
	db, mock := newMockDB(t)
	reader := NewReader(db, Config{Currency: "TRY", InboundMovementType: 0}, zap.NewNop())

	mock.ExpectQuery("FROM STOKLAR s").WillReturnRows(
		sqlmock.NewRows(itemColumnsForTest()).
			AddRow("SKU-1  ", "Widget  ", "A widget ", 100.0, "USD", 20.0, 1, 1,
				10, 20, 30, "Tools  ", "Hand Tools", "Hammers ", "images/widget.jpg ").
			AddRow("SKU-2", "Gadget", nil, 50.0, nil, 10.0, 1, 0,
				10, nil, nil, "Tools", nil, nil, nil),
	)
	mock.ExpectQuery("FROM STOKHR sh").WillReturnRows(
		sqlmock.NewRows([]string{"STOK_KODU", "DEPO_ADI", "KALAN"}).
			AddRow("SKU-1", "MAIN ", 7.0).
			AddRow("SKU-1", "OUTLET", 0.0).
			AddRow("SKU-2", "MAIN", -2.0),
	)

	items, err := reader.ListActiveItems(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "SKU-1", first.SKU)
	assert.Equal(t, "Widget", first.Name)
	assert.Equal(t, "A widget", first.Description)
	assert.Equal(t, 100.0, first.UnitPrice)
	assert.Equal(t, "USD", first.Currency)
	assert.Equal(t, 20.0, first.TaxRate)
	assert.True(t, first.Active)
	assert.True(t, first.Visible)
	assert.Equal(t, []PathLevel{
		{Code: "10", Name: "Tools"},
		{Code: "20", Name: "Hand Tools"},
		{Code: "30", Name: "Hammers"},
	}, first.CategoryPath)
	assert.Equal(t, []string{"images/widget.jpg"}, first.Images)
	// Zero balance warehouses are dropped.
	assert.Equal(t, map[string]float64{"MAIN": 7.0}, first.StockByWarehouse)
	assert.Equal(t, 7.0, first.TotalStock())

	second := items[1]
	assert.Equal(t, "SKU-2", second.SKU)
	// Missing currency falls back to the configured default.
	assert.Equal(t, "TRY", second.Currency)
	assert.False(t, second.Visible)
	assert.Equal(t, []PathLevel{{Code: "10", Name: "Tools"}}, second.CategoryPath)
	assert.Empty(t, second.Images)
	// Negative balances are kept as-is.
	assert.Equal(t, map[string]float64{"MAIN": -2.0}, second.StockByWarehouse)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetItem(t *testing.T) {
	db, mock := newMockDB(t)
	reader := NewReader(db, Config{Currency: "TRY"}, zap.NewNop())

	mock.ExpectQuery("FROM STOKLAR s").WithArgs("SKU-1").WillReturnRows(
		sqlmock.NewRows(itemColumnsForTest()).
			AddRow("SKU-1", "Widget", "", 100.0, "TRY", 20.0, 1, 1,
				10, nil, nil, "Tools", nil, nil, nil),
	)
	mock.ExpectQuery("FROM STOKHR sh").WillReturnRows(
		sqlmock.NewRows([]string{"DEPO_ADI", "KALAN"}).
			AddRow("MAIN", 3.0),
	)

	item, err := reader.GetItem(context.Background(), "SKU-1")
	assert.NoError(t, err)
	assert.NotNil(t, item)
	assert.Equal(t, "SKU-1", item.SKU)
	assert.Equal(t, map[string]float64{"MAIN": 3.0}, item.StockByWarehouse)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetItemNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	reader := NewReader(db, Config{Currency: "TRY"}, zap.NewNop())

	mock.ExpectQuery("FROM STOKLAR s").WithArgs("MISSING").WillReturnRows(
		sqlmock.NewRows(itemColumnsForTest()),
	)

	item, err := reader.GetItem(context.Background(), "MISSING")
	assert.NoError(t, err)
	assert.Nil(t, item)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories(t *testing.T) {
	db, mock := newMockDB(t)
	reader := NewReader(db, Config{}, zap.NewNop())

	mock.ExpectQuery(`FROM GRUP\s+WHERE`).WillReturnRows(
		sqlmock.NewRows([]string{"BLKODU", "GRUP_ADI"}).
			AddRow(1, "Electronics").
			AddRow(2, "Tools  "),
	)
	mock.ExpectQuery("FROM GRUP_ARA").WillReturnRows(
		sqlmock.NewRows([]string{"BLKODU", "GRUP_ADI", "UST_GRUP_ADI"}).
			AddRow(10, "Hand Tools", "Tools").
			AddRow(11, "Phones", "Electronics"),
	)
	mock.ExpectQuery("FROM GRUP_ALT").WillReturnRows(
		sqlmock.NewRows([]string{"BLKODU", "GRUP_ADI", "UST_GRUP_ADI", "UST_GRUP_ADI2"}).
			AddRow(100, "Hammers", "Tools", "Hand Tools"),
	)

	tree, err := reader.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Len(t, tree, 2)

	assert.Equal(t, "Electronics", tree[0].Name)
	assert.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Phones", tree[0].Children[0].Name)

	assert.Equal(t, "Tools", tree[1].Name)
	assert.Len(t, tree[1].Children, 1)
	hand := tree[1].Children[0]
	assert.Equal(t, "Hand Tools", hand.Name)
	assert.Len(t, hand.Children, 1)
	assert.Equal(t, "Hammers", hand.Children[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}
