package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
)

func newWishListFixture() (*memStore, *WishListService) {
	store := newMemStore()
	svc := NewWishListService(&memWishListRepo{store}, &memProductRepo{store})
	return store, svc
}

func TestWishListAddItem(t *testing.T) {
	store, svc := newWishListFixture()
	store.addProduct(1, "Oak Table", 250, 10)

	list, err := svc.CreateWishList(context.Background())
	require.NoError(t, err)

	item, err := svc.AddItem(context.Background(), list.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.ProductID)

	fetched, err := svc.GetWishList(context.Background(), list.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Items, 1)
}

func TestWishListAddItem_UnknownWishList(t *testing.T) {
	store, svc := newWishListFixture()
	store.addProduct(1, "Oak Table", 250, 10)

	_, err := svc.AddItem(context.Background(), 42, 1)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.wishlistItems)
}

func TestWishListAddItem_UnknownProduct(t *testing.T) {
	store, svc := newWishListFixture()
	list, err := svc.CreateWishList(context.Background())
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), list.ID, 42)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.wishlistItems)
}

func TestWishListAddItem_Duplicate(t *testing.T) {
	store, svc := newWishListFixture()
	store.addProduct(1, "Oak Table", 250, 10)
	list, err := svc.CreateWishList(context.Background())
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), list.ID, 1)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), list.ID, 1)
	assert.ErrorIs(t, err, ErrDuplicateItem)

	// the duplicate must not create a second row
	assert.Len(t, store.wishlistItems, 1)
}

func TestWishListSameProductAcrossLists(t *testing.T) {
	store, svc := newWishListFixture()
	store.addProduct(1, "Oak Table", 250, 10)

	first, err := svc.CreateWishList(context.Background())
	require.NoError(t, err)
	second, err := svc.CreateWishList(context.Background())
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), first.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), second.ID, 1)
	require.NoError(t, err, "uniqueness is per wishlist, not global")
}

func TestWishListRemoveItem(t *testing.T) {
	store, svc := newWishListFixture()
	store.addProduct(1, "Oak Table", 250, 10)
	list, err := svc.CreateWishList(context.Background())
	require.NoError(t, err)

	item, err := svc.AddItem(context.Background(), list.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), item.ID))
	assert.Empty(t, store.wishlistItems)

	// removed pair can be re-added
	_, err = svc.AddItem(context.Background(), list.ID, 1)
	assert.NoError(t, err)
}

func TestWishListGetUnknown(t *testing.T) {
	_, svc := newWishListFixture()

	_, err := svc.GetWishList(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterCreatesCustomerAndNotifies(t *testing.T) {
	store := newMemStore()
	dispatcher := &mockDispatcher{}
	svc := NewCustomerService(&memUserRepo{store}, &memCustomerRepo{store}, dispatcher, nil)

	customer, err := svc.Register(context.Background(), &entity.User{
		Username: "marta",
		Email:    "marta@example.com",
		Password: "pw",
	})

	require.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.Len(t, store.customers, 1)

	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, "welcome", dispatcher.calls[0].Template)
	assert.Equal(t, "marta@example.com", dispatcher.calls[0].Recipient)
}

func TestRegisterRejectsIncompletePayload(t *testing.T) {
	store := newMemStore()
	svc := NewCustomerService(&memUserRepo{store}, &memCustomerRepo{store}, nil, nil)

	_, err := svc.Register(context.Background(), &entity.User{Username: "marta"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.users)
	assert.Empty(t, store.customers)
}

func TestCreateCustomOrder(t *testing.T) {
	store := newMemStore()
	store.users[1] = &entity.User{ID: 1, Username: "abel", Email: "abel@example.com"}
	store.customers[1] = &entity.Customer{ID: 1, UserID: 1}
	dispatcher := &mockDispatcher{}
	svc := NewCustomOrderService(&memCustomOrderRepo{store}, &memCustomerRepo{store}, &memUserRepo{store}, dispatcher)

	created, err := svc.CreateCustomOrder(context.Background(), &entity.CustomOrder{
		CustomerID:  1,
		ProductName: "Corner Bookshelf",
		FrontImage:  "store/images/front.jpg",
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.PlacedAt.IsZero())

	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, "custom-order-wait", dispatcher.calls[0].Template)
	assert.Equal(t, "abel@example.com", dispatcher.calls[0].Recipient)
}

func TestCreateCustomOrder_UnknownCustomer(t *testing.T) {
	store := newMemStore()
	svc := NewCustomOrderService(&memCustomOrderRepo{store}, &memCustomerRepo{store}, &memUserRepo{store}, nil)

	_, err := svc.CreateCustomOrder(context.Background(), &entity.CustomOrder{
		CustomerID:  9,
		ProductName: "Corner Bookshelf",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.customOrders)
}
