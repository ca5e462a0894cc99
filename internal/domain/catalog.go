package domain

import "time"

type Category struct {
	ID   int64
	Name string
	Slug string
}

// Product is immutable from the cart's perspective: lines snapshot its price
// at mutation time and never write it back.
type Product struct {
	ID          int64
	Name        string
	Slug        string
	CategoryID  int64
	Description string
	Weight      float64
	Price       Money

	CreatedAt time.Time
}
