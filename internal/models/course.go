package models

import "time"

type Category struct {
	ID    int64  `db:"id"`
	Title string `db:"title"`
}

type Course struct {
	ID          int64     `db:"id"`
	CategoryID  int64     `db:"category_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       int64     `db:"price"`
	Publish     bool      `db:"publish"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
