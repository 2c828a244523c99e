package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteListingUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("删除挂牌剩余数量退回库存", func(t *testing.T) {
		f := newEngineFixture()
		productID, listingID := setupListing(t, f) // 库存4,挂牌6

		result, err := f.del.Execute(ctx, DeleteListingRequest{
			ListingID: listingID,
			SellerID:  201,
		})
		require.NoError(t, err)
		require.True(t, result.Success, "删除应成功: %s", result.Message)
		assert.Equal(t, 6, result.Quantity, "退回数量=挂牌剩余数量")

		_, ok := f.store.listings[listingID]
		assert.False(t, ok, "挂牌行已物理删除")
		inv := f.store.inventories[sellerProduct{201, productID}]
		assert.Equal(t, 10, inv.Quantity, "库存4+6=10,全部回到库存")
	})

	t.Run("重复删除是业务失败且不凭空补库存", func(t *testing.T) {
		f := newEngineFixture()
		productID, listingID := setupListing(t, f)

		result, err := f.del.Execute(ctx, DeleteListingRequest{ListingID: listingID, SellerID: 201})
		require.NoError(t, err)
		require.True(t, result.Success)
		invAfterFirst := f.store.inventories[sellerProduct{201, productID}]

		// 第二次删除:不报错,但失败,库存不变
		result, err = f.del.Execute(ctx, DeleteListingRequest{ListingID: listingID, SellerID: 201})
		require.NoError(t, err, "幂等失败不是错误")
		assert.False(t, result.Success)
		assert.Equal(t, "挂牌不存在", result.Message)

		inv := f.store.inventories[sellerProduct{201, productID}]
		assert.Equal(t, invAfterFirst.Quantity, inv.Quantity, "重复删除不会创造库存")
	})

	t.Run("数量为0的挂牌直接删除", func(t *testing.T) {
		f := newEngineFixture()
		productID, listingID := setupListing(t, f)

		// 先调到0(不退库存),再删除
		_, err := f.update.Execute(ctx, UpdateListingRequest{
			ListingID: listingID, SellerID: 201, Quantity: intPtr(0),
		})
		require.NoError(t, err)

		result, err := f.del.Execute(ctx, DeleteListingRequest{ListingID: listingID, SellerID: 201})
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, 0, result.Quantity, "没有数量可退")

		inv := f.store.inventories[sellerProduct{201, productID}]
		assert.Equal(t, 4, inv.Quantity, "库存保持4")
	})

	t.Run("库存记录缺失时新建兜底", func(t *testing.T) {
		f := newEngineFixture()
		productID, listingID := setupListing(t, f)

		// 人为制造异常数据:库存记录丢失
		delete(f.store.inventories, sellerProduct{201, productID})

		result, err := f.del.Execute(ctx, DeleteListingRequest{ListingID: listingID, SellerID: 201})
		require.NoError(t, err)
		require.True(t, result.Success)

		inv, ok := f.store.inventories[sellerProduct{201, productID}]
		require.True(t, ok, "缺失的库存记录应被新建")
		assert.Equal(t, 6, inv.Quantity, "挂牌数量不能凭空蒸发")
	})

	t.Run("无权删除他人挂牌", func(t *testing.T) {
		f := newEngineFixture()
		_, listingID := setupListing(t, f)
		before := f.store.snapshot()

		result, err := f.del.Execute(ctx, DeleteListingRequest{ListingID: listingID, SellerID: 999})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "无权操作该挂牌", result.Message)
		assertStoreUnchanged(t, before, f.store)
	})
}
