package entity

import "time"

type WishList struct {
	ID        int            `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []WishListItem `json:"items"`
}

type WishListItem struct {
	ID         int     `json:"id"`
	WishListID int     `json:"-"`
	ProductID  int     `json:"product_id"`
	Product    Product `json:"product"`
}

/*
MySQL schema:

CREATE TABLE wishlists (
	id INT AUTO_INCREMENT PRIMARY KEY,
	created_at DATETIME NOT NULL
);

CREATE TABLE wishlist_items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	wishlist_id INT NOT NULL,
	product_id INT NOT NULL,
	FOREIGN KEY (wishlist_id) REFERENCES wishlists(id) ON DELETE CASCADE,
	FOREIGN KEY (product_id) REFERENCES products(id)
);
*/
