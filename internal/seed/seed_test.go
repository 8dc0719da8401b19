package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestEnsureDemoWarehousePopulatesEveryTable(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, EnsureDemoWarehouse(db))

	counts := map[string]any{
		"orders":           &Order{},
		"order_lines":      &OrderLine{},
		"customers":        &Customer{},
		"products":         &Product{},
		"regions":          &Region{},
		"shippers":         &Shipper{},
		"shipping_methods": &ShippingMethod{},
		"suppliers":        &Supplier{},
		"packs":            &Pack{},
	}
	for table, model := range counts {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		require.Greater(t, n, int64(0), "table %s should be seeded", table)
	}

	// 6 months x 5 orders
	var orders int64
	require.NoError(t, db.Model(&Order{}).Count(&orders).Error)
	require.Equal(t, int64(30), orders)

	var lines, packs int64
	require.NoError(t, db.Model(&OrderLine{}).Count(&lines).Error)
	require.NoError(t, db.Model(&Pack{}).Count(&packs).Error)
	require.Less(t, packs, lines, "some lines should stay unpacked")
}

func TestEnsureDemoWarehouseIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, EnsureDemoWarehouse(db))

	var before int64
	require.NoError(t, db.Model(&Order{}).Count(&before).Error)

	require.NoError(t, EnsureDemoWarehouse(db))

	var after int64
	require.NoError(t, db.Model(&Order{}).Count(&after).Error)
	require.Equal(t, before, after)
}

func TestEnsureDemoWarehouseRequiresDB(t *testing.T) {
	require.Error(t, EnsureDemoWarehouse(nil))
	require.Error(t, AutoMigrate(nil))
}
