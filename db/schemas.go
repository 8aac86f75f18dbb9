package db

var schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS products (
	product_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	name VARCHAR(255) NOT NULL UNIQUE,
	description TEXT NOT NULL,
	price NUMERIC(10, 2) NOT NULL,
	stock INT NOT NULL DEFAULT 10 CHECK (stock >= 0)
);

CREATE TABLE IF NOT EXISTS orders (
	order_number VARCHAR(32) PRIMARY KEY,
	user_id VARCHAR(64) NOT NULL,
	username VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	product_id UUID NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	unit_price NUMERIC(10, 2) NOT NULL,
	quantity INT NOT NULL,
	delivery_street VARCHAR(255) NOT NULL,
	delivery_city VARCHAR(255) NOT NULL,
	delivery_zip_code VARCHAR(32) NOT NULL,
	delivery_phone VARCHAR(32) NOT NULL,
	total_amount NUMERIC(10, 2) NOT NULL,
	payment_method VARCHAR(32) NOT NULL DEFAULT 'Cash on Delivery',
	status VARCHAR(16) NOT NULL DEFAULT 'Confirmed',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id, created_at DESC);
`
