package entity

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // In production, you'd store hashed passwords.
}

type Customer struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Gender    string `json:"gender,omitempty"` // "M" or "F"
	BirthDate string `json:"birth_date,omitempty"`
}

/*
MySQL schema:

CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	email VARCHAR(50) NOT NULL,
	password VARCHAR(255) NOT NULL,
	UNIQUE KEY email_idx (email)
);

CREATE TABLE customers (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL UNIQUE,
	gender CHAR(1) NOT NULL DEFAULT '',
	birth_date VARCHAR(10) NOT NULL DEFAULT '',
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);
*/
