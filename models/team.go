package models

type Team struct {
	ID         int    `json:"id" db:"id"`
	Title      string `json:"title" db:"title"`
	ShortTitle string `json:"short_title" db:"short_title"`
	OwnerID    *int   `json:"owner_id,omitempty" db:"owner_id"`
}
