package service

import (
	"context"
	"sync"

	"github.com/sanoy-si/FurnitureStore/internal/entity"
	"github.com/sanoy-si/FurnitureStore/internal/repository"
)

// memStore is a shared in-memory backing store for the repository mocks.
// WithTx holds the mutex for the whole callback, which models the
// row-level locking the SQL transaction provides.
type memStore struct {
	mu sync.Mutex

	products   map[int]*entity.Product
	carts      map[string]*entity.Cart
	cartItems  map[int]*entity.CartItem
	nextItemID int

	orders      map[int]*entity.Order
	orderItems  map[int][]entity.OrderItem
	nextOrderID int

	users         map[int]*entity.User
	customers     map[int]*entity.Customer
	wishlists     map[int]*entity.WishList
	wishlistItems map[int]*entity.WishListItem
	nextListID    int
	nextWishID    int
	customOrders  []*entity.CustomOrder

	failReserve bool // force a mid-transaction store failure
}

func newMemStore() *memStore {
	return &memStore{
		products:      map[int]*entity.Product{},
		carts:         map[string]*entity.Cart{},
		cartItems:     map[int]*entity.CartItem{},
		orders:        map[int]*entity.Order{},
		orderItems:    map[int][]entity.OrderItem{},
		users:         map[int]*entity.User{},
		customers:     map[int]*entity.Customer{},
		wishlists:     map[int]*entity.WishList{},
		wishlistItems: map[int]*entity.WishListItem{},
	}
}

func (s *memStore) addProduct(id int, title string, price float64, inventory int) {
	s.products[id] = &entity.Product{ID: id, Title: title, UnitPrice: price, Inventory: inventory}
}

func (s *memStore) addCart(id string) {
	s.carts[id] = &entity.Cart{ID: id}
}

func (s *memStore) addCartItem(cartID string, productID, quantity int) int {
	s.nextItemID++
	s.cartItems[s.nextItemID] = &entity.CartItem{
		ID:        s.nextItemID,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return s.nextItemID
}

func (s *memStore) sortedCartItems(cartID string) []entity.CartItem {
	var items []entity.CartItem
	for id := 1; id <= s.nextItemID; id++ {
		item, ok := s.cartItems[id]
		if ok && item.CartID == cartID {
			items = append(items, *item)
		}
	}
	return items
}

// --- cart repository ---

type memCartRepo struct {
	store *memStore
}

var _ repository.CartRepository = (*memCartRepo)(nil)

func (r *memCartRepo) CreateCart(_ context.Context, cart *entity.Cart) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.carts[cart.ID] = cart
	return nil
}

func (r *memCartRepo) GetCart(_ context.Context, id string) (*entity.Cart, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cart, ok := r.store.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *cart
	return &copied, nil
}

func (r *memCartRepo) GetCartItems(_ context.Context, cartID string) ([]entity.CartItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	items := r.store.sortedCartItems(cartID)
	for i := range items {
		if p, ok := r.store.products[items[i].ProductID]; ok {
			items[i].Product = *p
		}
	}
	return items, nil
}

func (r *memCartRepo) GetCartItem(_ context.Context, cartID string, productID int) (*entity.CartItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, item := range r.store.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCartRepo) CreateCartItem(_ context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item.ID = r.store.addCartItem(item.CartID, item.ProductID, item.Quantity)
	return item, nil
}

func (r *memCartRepo) UpdateCartItemQuantity(_ context.Context, itemID, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if item, ok := r.store.cartItems[itemID]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (r *memCartRepo) DeleteCartItem(_ context.Context, itemID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.cartItems, itemID)
	return nil
}

func (r *memCartRepo) DeleteCart(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.deleteCartLocked(id)
	return nil
}

func (s *memStore) deleteCartLocked(id string) {
	delete(s.carts, id)
	for itemID, item := range s.cartItems {
		if item.CartID == id {
			delete(s.cartItems, itemID)
		}
	}
}

func (r *memCartRepo) WithTx(_ context.Context, fn func(tx repository.CartTx) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(&memCartTx{store: r.store})
}

type memCartTx struct {
	store *memStore
}

func (t *memCartTx) LinesWithInventory(_ context.Context, cartID string) ([]entity.CartLine, error) {
	var lines []entity.CartLine
	for _, item := range t.store.sortedCartItems(cartID) {
		product := t.store.products[item.ProductID]
		lines = append(lines, entity.CartLine{
			ItemID:       item.ID,
			ProductID:    product.ID,
			ProductTitle: product.Title,
			UnitPrice:    product.UnitPrice,
			Quantity:     item.Quantity,
			Inventory:    product.Inventory,
		})
	}
	return lines, nil
}

func (t *memCartTx) SetItemQuantity(_ context.Context, itemID, quantity int) error {
	if item, ok := t.store.cartItems[itemID]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (t *memCartTx) RemoveItem(_ context.Context, itemID int) error {
	delete(t.store.cartItems, itemID)
	return nil
}

// --- order repository ---

type memOrderRepo struct {
	store *memStore
}

var _ repository.OrderRepository = (*memOrderRepo)(nil)

func (r *memOrderRepo) GetOrderByID(_ context.Context, id int) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *order
	copied.Items = r.store.orderItems[id]
	return &copied, nil
}

func (r *memOrderRepo) GetOrdersByCustomer(_ context.Context, customerID int) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var orders []*entity.Order
	for id := 1; id <= r.store.nextOrderID; id++ {
		order, ok := r.store.orders[id]
		if ok && order.CustomerID == customerID {
			copied := *order
			copied.Items = r.store.orderItems[id]
			orders = append(orders, &copied)
		}
	}
	return orders, nil
}

func (r *memOrderRepo) GetOrders(_ context.Context) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var orders []*entity.Order
	for id := 1; id <= r.store.nextOrderID; id++ {
		if order, ok := r.store.orders[id]; ok {
			copied := *order
			copied.Items = r.store.orderItems[id]
			orders = append(orders, &copied)
		}
	}
	return orders, nil
}

func (r *memOrderRepo) UpdatePaymentStatus(_ context.Context, id int, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order, ok := r.store.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.PaymentStatus = status
	return nil
}

// WithTx buffers every mutation and applies it only when fn succeeds,
// mirroring commit/rollback. The mutex held across fn stands in for the
// FOR UPDATE row lock.
func (r *memOrderRepo) WithTx(_ context.Context, fn func(tx repository.OrderTx) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := &memOrderTx{store: r.store, reserved: map[int]int{}}
	if err := fn(tx); err != nil {
		return err
	}

	// commit
	for productID, qty := range tx.reserved {
		r.store.products[productID].Inventory -= qty
	}
	if tx.order != nil {
		r.store.orders[tx.order.ID] = tx.order
		r.store.orderItems[tx.order.ID] = tx.insertedItems
	}
	for _, cartID := range tx.deletedCarts {
		r.store.deleteCartLocked(cartID)
	}
	return nil
}

type memOrderTx struct {
	store         *memStore
	order         *entity.Order
	reserved      map[int]int
	insertedItems []entity.OrderItem
	deletedCarts  []string
}

func (t *memOrderTx) CreateOrder(_ context.Context, customerID int) (*entity.Order, error) {
	t.store.nextOrderID++
	t.order = &entity.Order{
		ID:            t.store.nextOrderID,
		CustomerID:    customerID,
		PaymentStatus: entity.PaymentStatusPending,
	}
	return t.order, nil
}

func (t *memOrderTx) CartItems(_ context.Context, cartID string) ([]entity.CartItem, error) {
	return t.store.sortedCartItems(cartID), nil
}

func (t *memOrderTx) Reserve(_ context.Context, productID, requested int) (*entity.Product, int, error) {
	if t.store.failReserve {
		return nil, 0, errStoreDown
	}
	product, ok := t.store.products[productID]
	if !ok {
		return nil, 0, repository.ErrNotFound
	}
	available := product.Inventory - t.reserved[productID]
	granted := requested
	if available < granted {
		granted = available
	}
	if granted == 0 {
		copied := *product
		return &copied, 0, nil
	}
	t.reserved[productID] += granted
	copied := *product
	copied.Inventory = available - granted
	return &copied, granted, nil
}

func (t *memOrderTx) InsertOrderItems(_ context.Context, orderID int, items []entity.OrderItem) error {
	t.insertedItems = append(t.insertedItems, items...)
	return nil
}

func (t *memOrderTx) DeleteCart(_ context.Context, cartID string) error {
	t.deletedCarts = append(t.deletedCarts, cartID)
	return nil
}

// --- product repository ---

type memProductRepo struct {
	store *memStore
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) GetProductByID(_ context.Context, id int) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *memProductRepo) GetProducts(_ context.Context) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var products []*entity.Product
	for _, product := range r.store.products {
		copied := *product
		products = append(products, &copied)
	}
	return products, nil
}

func (r *memProductRepo) CreateProduct(_ context.Context, product *entity.Product) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[product.ID] = product
	return product, nil
}

func (r *memProductRepo) UpdateProduct(_ context.Context, product *entity.Product) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[product.ID] = product
	return product, nil
}

func (r *memProductRepo) DeleteProduct(_ context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

func (r *memProductRepo) ProductExists(_ context.Context, id int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.products[id]
	return ok, nil
}

func (r *memProductRepo) CountOrderItemsByProduct(_ context.Context, productID int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, items := range r.store.orderItems {
		for _, item := range items {
			if item.ProductID == productID {
				count++
			}
		}
	}
	return count, nil
}

func (r *memProductRepo) GetProductImages(_ context.Context, productID int) ([]entity.ProductImage, error) {
	return nil, nil
}

func (r *memProductRepo) CreateProductImage(_ context.Context, image *entity.ProductImage) (*entity.ProductImage, error) {
	return image, nil
}

func (r *memProductRepo) DeleteProductImage(_ context.Context, id int) error {
	return nil
}

// --- customer / user repositories ---

type memCustomerRepo struct {
	store *memStore
}

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)

func (r *memCustomerRepo) CreateCustomer(_ context.Context, customer *entity.Customer) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	customer.ID = len(r.store.customers) + 1
	r.store.customers[customer.ID] = customer
	return customer, nil
}

func (r *memCustomerRepo) GetCustomerByID(_ context.Context, id int) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	customer, ok := r.store.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return customer, nil
}

func (r *memCustomerRepo) GetCustomerByUserID(_ context.Context, userID int) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, customer := range r.store.customers {
		if customer.UserID == userID {
			return customer, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCustomerRepo) GetCustomers(_ context.Context) ([]*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var customers []*entity.Customer
	for _, customer := range r.store.customers {
		customers = append(customers, customer)
	}
	return customers, nil
}

func (r *memCustomerRepo) UpdateCustomer(_ context.Context, customer *entity.Customer) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.customers[customer.ID] = customer
	return customer, nil
}

type memUserRepo struct {
	store *memStore
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = len(r.store.users) + 1
	r.store.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id int) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetUserByEmailAndPassword(_ context.Context, email, password string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email && user.Password == password {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- wishlist repository ---

type memWishListRepo struct {
	store *memStore
}

var _ repository.WishListRepository = (*memWishListRepo)(nil)

func (r *memWishListRepo) CreateWishList(_ context.Context, list *entity.WishList) (*entity.WishList, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextListID++
	list.ID = r.store.nextListID
	r.store.wishlists[list.ID] = list
	return list, nil
}

func (r *memWishListRepo) GetWishList(_ context.Context, id int) (*entity.WishList, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, ok := r.store.wishlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *list
	copied.Items = r.store.wishlistItemsLocked(id)
	return &copied, nil
}

func (s *memStore) wishlistItemsLocked(wishlistID int) []entity.WishListItem {
	var items []entity.WishListItem
	for id := 1; id <= s.nextWishID; id++ {
		item, ok := s.wishlistItems[id]
		if ok && item.WishListID == wishlistID {
			items = append(items, *item)
		}
	}
	return items
}

func (r *memWishListRepo) DeleteWishList(_ context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.wishlists, id)
	return nil
}

func (r *memWishListRepo) GetWishListItems(_ context.Context, wishlistID int) ([]entity.WishListItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.wishlistItemsLocked(wishlistID), nil
}

func (r *memWishListRepo) WishListItemExists(_ context.Context, wishlistID, productID int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, item := range r.store.wishlistItems {
		if item.WishListID == wishlistID && item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memWishListRepo) CreateWishListItem(_ context.Context, item *entity.WishListItem) (*entity.WishListItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextWishID++
	item.ID = r.store.nextWishID
	r.store.wishlistItems[item.ID] = item
	return item, nil
}

func (r *memWishListRepo) DeleteWishListItem(_ context.Context, itemID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.wishlistItems, itemID)
	return nil
}

// --- custom order repository ---

type memCustomOrderRepo struct {
	store *memStore
}

var _ repository.CustomOrderRepository = (*memCustomOrderRepo)(nil)

func (r *memCustomOrderRepo) CreateCustomOrder(_ context.Context, order *entity.CustomOrder) (*entity.CustomOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order.ID = len(r.store.customOrders) + 1
	r.store.customOrders = append(r.store.customOrders, order)
	return order, nil
}

func (r *memCustomOrderRepo) GetCustomOrdersByCustomer(_ context.Context, customerID int) ([]*entity.CustomOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var orders []*entity.CustomOrder
	for _, order := range r.store.customOrders {
		if order.CustomerID == customerID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// --- notification dispatcher ---

type mockDispatcher struct {
	mu    sync.Mutex
	calls []dispatchedNotification
}

type dispatchedNotification struct {
	Template  string
	Recipient string
	Data      map[string]interface{}
}

func (d *mockDispatcher) Notify(_ context.Context, templateKey, recipient string, data map[string]interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchedNotification{Template: templateKey, Recipient: recipient, Data: data})
}
