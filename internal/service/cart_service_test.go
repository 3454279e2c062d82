package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture() (*memStore, *CartService) {
	store := newMemStore()
	svc := NewCartService(&memCartRepo{store}, &memProductRepo{store})
	return store, svc
}

func TestCreateCart_AssignsOpaqueToken(t *testing.T) {
	store, svc := newCartFixture()

	first, err := svc.CreateCart(context.Background())
	require.NoError(t, err)
	second, err := svc.CreateCart(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Contains(t, store.carts, first.ID)
}

func TestAddItem_NewLine(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 10)
	store.addCart("cart-1")

	item, err := svc.AddItem(context.Background(), "cart-1", 1, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Len(t, store.sortedCartItems("cart-1"), 1)
}

func TestAddItem_ExistingLineIncrements(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 10)
	store.addCart("cart-1")
	store.addCartItem("cart-1", 1, 2)

	item, err := svc.AddItem(context.Background(), "cart-1", 1, 3)

	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	// still one line per product
	assert.Len(t, store.sortedCartItems("cart-1"), 1)
}

func TestAddItem_RejectsUnknownProduct(t *testing.T) {
	store, svc := newCartFixture()
	store.addCart("cart-1")

	_, err := svc.AddItem(context.Background(), "cart-1", 42, 1)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.sortedCartItems("cart-1"))
}

func TestAddItem_RejectsQuantityOverInventory(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 2)
	store.addCart("cart-1")

	_, err := svc.AddItem(context.Background(), "cart-1", 1, 3)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.sortedCartItems("cart-1"))
}

func TestAddItem_RejectsZeroQuantity(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 2)
	store.addCart("cart-1")

	_, err := svc.AddItem(context.Background(), "cart-1", 1, 0)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetCart_ComputesTotals(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 10)
	store.addProduct(2, "Walnut Chair", 80, 10)
	store.addCart("cart-1")
	store.addCartItem("cart-1", 1, 2)
	store.addCartItem("cart-1", 2, 1)

	cart, err := svc.GetCart(context.Background(), "cart-1")

	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 500.0, cart.Items[0].TotalPrice)
	assert.Equal(t, 580.0, cart.TotalPrice)
}

func TestRefreshCart_Classification(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 0) // sold out
	store.addProduct(2, "Walnut Chair", 80, 2)
	store.addProduct(3, "Pine Shelf", 40, 2)
	store.addCart("cart-1")
	store.addCartItem("cart-1", 1, 3) // removed, reported with quantity 3
	store.addCartItem("cart-1", 2, 5) // reduced 5 -> 2
	store.addCartItem("cart-1", 3, 2) // untouched, exactly equal

	refreshed, err := svc.RefreshCart(context.Background(), "cart-1")
	require.NoError(t, err)

	require.Len(t, refreshed.DeletedItems, 1)
	assert.Equal(t, 1, refreshed.DeletedItems[0].ProductID)
	assert.Equal(t, "Oak Table", refreshed.DeletedItems[0].ProductTitle)
	assert.Equal(t, 3, refreshed.DeletedItems[0].Quantity)

	require.Len(t, refreshed.QuantityChangedItems, 1)
	assert.Equal(t, 2, refreshed.QuantityChangedItems[0].ProductID)
	assert.Equal(t, 5, refreshed.QuantityChangedItems[0].Quantity, "reports the original requested quantity")

	require.Len(t, refreshed.Cart.Items, 2)
	assert.Equal(t, 2, refreshed.Cart.Items[0].ProductID)
	assert.Equal(t, 2, refreshed.Cart.Items[0].Quantity, "clamped down to inventory")
	assert.Equal(t, 3, refreshed.Cart.Items[1].ProductID)
	assert.Equal(t, 2, refreshed.Cart.Items[1].Quantity, "line equal to inventory stays as-is")
}

func TestRefreshCart_NoChanges(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 10)
	store.addCart("cart-1")
	store.addCartItem("cart-1", 1, 2)

	refreshed, err := svc.RefreshCart(context.Background(), "cart-1")

	require.NoError(t, err)
	assert.Empty(t, refreshed.DeletedItems)
	assert.Empty(t, refreshed.QuantityChangedItems)
	require.Len(t, refreshed.Cart.Items, 1)
	assert.Equal(t, 2, refreshed.Cart.Items[0].Quantity)
}

func TestRefreshCart_UnknownCart(t *testing.T) {
	_, svc := newCartFixture()

	_, err := svc.RefreshCart(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateItem_BoundedByInventory(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 4)
	store.addCart("cart-1")
	itemID := store.addCartItem("cart-1", 1, 1)

	item, err := svc.UpdateItem(context.Background(), "cart-1", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, 4, store.cartItems[itemID].Quantity)

	_, err = svc.UpdateItem(context.Background(), "cart-1", 1, 5)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoveItem(t *testing.T) {
	store, svc := newCartFixture()
	store.addProduct(1, "Oak Table", 250, 4)
	store.addCart("cart-1")
	store.addCartItem("cart-1", 1, 1)

	err := svc.RemoveItem(context.Background(), "cart-1", 1)
	require.NoError(t, err)
	assert.Empty(t, store.sortedCartItems("cart-1"))

	err = svc.RemoveItem(context.Background(), "cart-1", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
