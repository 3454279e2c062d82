package entity

type Product struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description"`
	UnitPrice    float64        `json:"unit_price"`
	PriceWithTax float64        `json:"price_with_tax,omitempty"`
	Inventory    int            `json:"inventory"`
	CollectionID int            `json:"collection_id"`
	CoverImage   string         `json:"cover_image"`
	Images       []ProductImage `json:"images,omitempty"`
}

type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Image     string `json:"image"`
}

type Collection struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

/*
MySQL schema:

CREATE TABLE collections (
	id INT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL
);

CREATE TABLE products (
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

CREATE TABLE product_images (
	id INT AUTO_INCREMENT PRIMARY KEY,
	product_id INT NOT NULL,
	image VARCHAR(255) NOT NULL,
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
);
*/
