package models

// Item is one entry of the protected items listing.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Page selects a window of a listing. Limit 0 means server default.
type Page struct {
	Skip  int
	Limit int
}
