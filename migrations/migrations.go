package migrations

import (
	"database/sql"
	"time"
)

func execWithRetry(db *sql.DB, retries int, query string) error {
	_, err := db.Exec(query)
	if err != nil {
		for i := 0; i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
			if err == nil {
				break
			}
		}
	}
	return err
}

// AutoMigrateAll creates every table the store needs, in FK order.
func AutoMigrateAll(retries int, db *sql.DB) error {
	for _, migrate := range []func(int, *sql.DB) error{
		AutoMigrateUsers,
		AutoMigrateCustomers,
		AutoMigrateCollections,
		AutoMigrateProducts,
		AutoMigrateProductImages,
		AutoMigrateCarts,
		AutoMigrateCartItems,
		AutoMigrateOrders,
		AutoMigrateOrderItems,
		AutoMigrateWishLists,
		AutoMigrateWishListItems,
		AutoMigrateCustomOrders,
	} {
		if err := migrate(retries, db); err != nil {
			return err
		}
	}
	return nil
}

// AutoMigrateUsers creates the users table if it does not exist.
func AutoMigrateUsers(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			email VARCHAR(50) NOT NULL,
			password VARCHAR(255) NOT NULL,
			UNIQUE KEY email_idx (email)
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateCustomers creates the customers table if it does not exist.
func AutoMigrateCustomers(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS customers (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL UNIQUE,
			gender CHAR(1) NOT NULL DEFAULT '',
			birth_date VARCHAR(10) NOT NULL DEFAULT '',
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateCollections creates the collections table if it does not exist.
func AutoMigrateCollections(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS collections (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateProducts creates the products table if it does not exist.
func AutoMigrateProducts(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			unit_price DOUBLE NOT NULL,
			inventory INT NOT NULL,
			collection_id INT NOT NULL,
			cover_image VARCHAR(255) NOT NULL DEFAULT '',
			FOREIGN KEY (collection_id) REFERENCES collections(id)
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateProductImages creates the product_images table if it does not exist.
func AutoMigrateProductImages(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS product_images (
			id INT AUTO_INCREMENT PRIMARY KEY,
			product_id INT NOT NULL,
			image VARCHAR(255) NOT NULL,
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateCarts creates the carts table if it does not exist.
func AutoMigrateCarts(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS carts (
			id CHAR(36) PRIMARY KEY,
			created_at DATETIME NOT NULL
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateCartItems creates the cart_items table if it does not exist.
func AutoMigrateCartItems(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS cart_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			cart_id CHAR(36) NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL,
			UNIQUE KEY cart_product_idx (cart_id, product_id),
			FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE,
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateOrders creates the orders table if it does not exist.
func AutoMigrateOrders(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			customer_id INT NOT NULL,
			placed_at DATETIME NOT NULL,
			payment_status VARCHAR(20) NOT NULL,
			FOREIGN KEY (customer_id) REFERENCES customers(id)
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateOrderItems creates the order_items table if it does not exist.
func AutoMigrateOrderItems(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS order_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL,
			unit_price DOUBLE NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateWishLists creates the wishlists table if it does not exist.
func AutoMigrateWishLists(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS wishlists (
			id INT AUTO_INCREMENT PRIMARY KEY,
			created_at DATETIME NOT NULL
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateWishListItems creates the wishlist_items table if it does not exist.
func AutoMigrateWishListItems(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS wishlist_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			wishlist_id INT NOT NULL,
			product_id INT NOT NULL,
			FOREIGN KEY (wishlist_id) REFERENCES wishlists(id) ON DELETE CASCADE,
			FOREIGN KEY (product_id) REFERENCES products(id)
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateCustomOrders creates the custom_orders table if it does not exist.
func AutoMigrateCustomOrders(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS custom_orders (
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
	`
	return execWithRetry(db, retries, query)
}
