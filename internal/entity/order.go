package entity

import "time"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusComplete = "complete"
	PaymentStatusFailed   = "failed"
)

type Order struct {
	ID            int         `json:"id"`
	CustomerID    int         `json:"customer_id"`
	PlacedAt      time.Time   `json:"placed_at"`
	PaymentStatus string      `json:"payment_status"`
	Items         []OrderItem `json:"items"`
}

// OrderItem snapshots the unit price at placement time; later product
// price changes do not affect existing orders.
type OrderItem struct {
	ID           int     `json:"id"`
	OrderID      int     `json:"-"`
	ProductID    int     `json:"product_id"`
	ProductTitle string  `json:"product_title"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
}

/*
MySQL schema:

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	customer_id INT NOT NULL,
	placed_at DATETIME NOT NULL,
	payment_status VARCHAR(20) NOT NULL,
	FOREIGN KEY (customer_id) REFERENCES customers(id)
);

CREATE TABLE order_items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL,
	product_id INT NOT NULL,
	quantity INT NOT NULL,
	unit_price DOUBLE NOT NULL,
	FOREIGN KEY (order_id) REFERENCES orders(id),
	FOREIGN KEY (product_id) REFERENCES products(id)
);
*/
