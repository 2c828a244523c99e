package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyStockUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("正常购买", func(t *testing.T) {
		f := newEngineFixture()
		productID := f.seedCatalog("SKU-001", 500, 10) // 5元,10件
		f.seedAccount(101, 10000)                      // 余额100元

		result, err := f.buy.Execute(ctx, BuyStockRequest{
			BuyerID:   101,
			ProductID: productID,
			Quantity:  3,
		})
		require.NoError(t, err)
		require.True(t, result.Success, "购买应成功: %s", result.Message)
		assert.Equal(t, 3, result.Quantity)
		assert.Equal(t, int64(1500), result.TotalCost, "总价=单价500x3")

		// 商品余量扣减
		entry := f.store.catalogEntries[productID]
		assert.Equal(t, 7, entry.Quantity, "平台余量10-3=7")
		assert.Equal(t, 10, entry.TotalAdded, "累计入库量不变")

		// 买家余额扣款
		acct := f.store.accounts[101]
		assert.Equal(t, int64(8500), acct.Balance, "余额10000-1500=8500")

		// 买家库存入账
		inv := f.store.inventories[sellerProduct{101, productID}]
		assert.Equal(t, 3, inv.Quantity)
		assert.Equal(t, int64(500), inv.UnitCost, "购入价为成交时单价")
		assert.Equal(t, "测试商品-SKU-001", inv.Name, "展示字段从商品拷贝")

		// 流水落账
		require.Len(t, f.store.ledgerEntries, 1)
		trade := f.store.ledgerEntries[0]
		assert.Equal(t, uint(101), trade.BuyerID)
		assert.Equal(t, int64(1500), trade.TotalPrice)
		assert.NotEmpty(t, trade.TradeNo)
	})

	t.Run("重复购买累加库存并覆写购入价", func(t *testing.T) {
		f := newEngineFixture()
		productID := f.seedCatalog("SKU-002", 500, 10)
		f.seedAccount(101, 100000)

		_, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 101, ProductID: productID, Quantity: 2})
		require.NoError(t, err)

		// 改价后再次购入
		entry := f.store.catalogEntries[productID]
		entry.Price = 800
		f.store.catalogEntries[productID] = entry

		result, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 101, ProductID: productID, Quantity: 3})
		require.NoError(t, err)
		require.True(t, result.Success)

		inv := f.store.inventories[sellerProduct{101, productID}]
		assert.Equal(t, 5, inv.Quantity, "数量累加2+3=5")
		assert.Equal(t, int64(800), inv.UnitCost, "购入价覆写为最新成交价")
		assert.Len(t, f.store.ledgerEntries, 2, "每次成交各追加一条流水")
	})

	t.Run("商品不存在", func(t *testing.T) {
		f := newEngineFixture()
		f.seedAccount(101, 10000)
		before := f.store.snapshot()

		result, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 101, ProductID: 999, Quantity: 1})
		require.NoError(t, err, "业务失败不是错误")
		assert.False(t, result.Success)
		assert.Equal(t, "商品不存在", result.Message)
		assertStoreUnchanged(t, before, f.store)
	})

	t.Run("商品未上架", func(t *testing.T) {
		f := newEngineFixture()
		productID := f.seedCatalog("SKU-003", 500, 10)
		entry := f.store.catalogEntries[productID]
		entry.Listed = false
		f.store.catalogEntries[productID] = entry
		f.seedAccount(101, 10000)
		before := f.store.snapshot()

		result, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 101, ProductID: productID, Quantity: 1})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "商品未上架", result.Message)
		assertStoreUnchanged(t, before, f.store)
	})

	t.Run("平台库存不足", func(t *testing.T) {
		f := newEngineFixture()
		productID := f.seedCatalog("SKU-004", 500, 2)
		f.seedAccount(101, 10000)
		before := f.store.snapshot()

		result, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 101, ProductID: productID, Quantity: 3})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "平台库存不足", result.Message)
		assertStoreUnchanged(t, before, f.store)
	})

	t.Run("账户余额不足", func(t *testing.T) {
		f := newEngineFixture()
		productID := f.seedCatalog("SKU-005", 500, 10)
		f.seedAccount(101, 1499) // 差1分
		before := f.store.snapshot()

		result, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 101, ProductID: productID, Quantity: 3})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "账户余额不足", result.Message)
		assertStoreUnchanged(t, before, f.store, "余额不足时商品和账户都不能有写入")
	})

	t.Run("账户不存在", func(t *testing.T) {
		f := newEngineFixture()
		productID := f.seedCatalog("SKU-006", 500, 10)
		before := f.store.snapshot()

		result, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 404, ProductID: productID, Quantity: 1})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "账户不存在", result.Message)
		assertStoreUnchanged(t, before, f.store)
	})

	t.Run("购买数量必须大于0", func(t *testing.T) {
		f := newEngineFixture()
		productID := f.seedCatalog("SKU-007", 500, 10)
		f.seedAccount(101, 10000)

		for _, q := range []int{0, -1} {
			result, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 101, ProductID: productID, Quantity: q})
			require.NoError(t, err)
			assert.False(t, result.Success, "数量%d应被拒绝", q)
		}
	})

	t.Run("恰好买光全部库存", func(t *testing.T) {
		f := newEngineFixture()
		productID := f.seedCatalog("SKU-008", 100, 5)
		f.seedAccount(101, 500)

		result, err := f.buy.Execute(ctx, BuyStockRequest{BuyerID: 101, ProductID: productID, Quantity: 5})
		require.NoError(t, err)
		require.True(t, result.Success)

		entry := f.store.catalogEntries[productID]
		assert.Equal(t, 0, entry.Quantity, "余量允许降到0")
		acct := f.store.accounts[101]
		assert.Equal(t, int64(0), acct.Balance, "余额允许降到0")
	})
}

// assertStoreUnchanged 断言两个快照完全一致
// 校验失败的操作不得产生任何写入
func assertStoreUnchanged(t *testing.T, before, after *memStore, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, before.catalogEntries, after.catalogEntries, msgAndArgs...)
	assert.Equal(t, before.inventories, after.inventories, msgAndArgs...)
	assert.Equal(t, before.listings, after.listings, msgAndArgs...)
	assert.Equal(t, before.ledgerEntries, after.ledgerEntries, msgAndArgs...)
	assert.Equal(t, before.accounts, after.accounts, msgAndArgs...)
}
