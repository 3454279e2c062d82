package entity

import "time"

// CustomOrder is a made-to-order request: the customer uploads four
// reference photos of the piece they want built.
type CustomOrder struct {
	ID             int       `json:"id"`
	CustomerID     int       `json:"customer_id"`
	ProductName    string    `json:"product_name"`
	Description    string    `json:"description,omitempty"`
	LeftSideImage  string    `json:"left_side_image"`
	RightSideImage string    `json:"right_side_image"`
	FrontImage     string    `json:"front_image"`
	RearImage      string    `json:"rear_image"`
	PlacedAt       time.Time `json:"placed_at"`
}

/*
MySQL schema:

CREATE TABLE custom_orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	customer_id INT NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	description TEXT,
	left_side_image VARCHAR(255) NOT NULL,
	right_side_image VARCHAR(255) NOT NULL,
	front_image VARCHAR(255) NOT NULL,
	rear_image VARCHAR(255) NOT NULL,
	placed_at DATETIME NOT NULL,
	FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
);
*/
