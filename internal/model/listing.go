package model

import "time"

type ListingKind string

const (
	ListingKindRental  ListingKind = "rental"
	ListingKindService ListingKind = "service"
)

// Listing is one marketplace offer: an item for rent or a service.
type Listing struct {
	ID          string      `json:"id" yaml:"id"`
	Kind        ListingKind `json:"kind" yaml:"kind"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string      `json:"category" yaml:"category"`
	Location    string      `json:"location" yaml:"location"`

	// Price per rental period or per service, in whole tenge.
	Price  int     `json:"price" yaml:"price"`
	Rating float64 `json:"rating" yaml:"rating"`

	Seller    string    `json:"seller" yaml:"seller"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Stats are the headline numbers shown on the home page.
type Stats struct {
	Listings  int     `json:"listings"`
	Sellers   int     `json:"sellers"`
	Schools   int     `json:"schools"`
	AvgRating float64 `json:"avgRating"`
}
