package entity

import "time"

type Cart struct {
	ID         string     `json:"id"` // opaque UUID token
	CreatedAt  time.Time  `json:"created_at"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

type CartItem struct {
	ID         int     `json:"id"`
	CartID     string  `json:"-"`
	ProductID  int     `json:"product_id"`
	Product    Product `json:"product"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// CartLine is a cart item joined with the product's live inventory,
// read once per reconciliation pass.
type CartLine struct {
	ItemID       int
	ProductID    int
	ProductTitle string
	UnitPrice    float64
	Quantity     int
	Inventory    int
}

// ChangedItem reports a line that reconciliation removed or reduced.
// Quantity is the quantity the customer originally requested.
type ChangedItem struct {
	ProductID    int    `json:"product_id"`
	ProductTitle string `json:"product_title"`
	Quantity     int    `json:"quantity"`
}

// RefreshedCart is the cart after reconciliation plus the diff applied to it.
type RefreshedCart struct {
	Cart                 *Cart         `json:"cart"`
	DeletedItems         []ChangedItem `json:"deleted_items"`
	QuantityChangedItems []ChangedItem `json:"quantity_changed_items"`
}

/*
MySQL schema:

CREATE TABLE carts (
	id CHAR(36) PRIMARY KEY,
	created_at DATETIME NOT NULL
);

CREATE TABLE cart_items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	cart_id CHAR(36) NOT NULL,
	product_id INT NOT NULL,
	quantity INT NOT NULL,
	UNIQUE KEY cart_product_idx (cart_id, product_id),
	FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE,
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
);
*/
