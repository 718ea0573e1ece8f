package model

import "time"

// Person is a director or producer record owned by a documentary.  The rows
// live in the `realisateurs` and `producteurs` tables respectively and are
// created and deleted together with their documentary (cascade).
type Person struct {
	ID        uint64 `json:"id"`
	Code      string `json:"code"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD
}

// Documentary is a competition film registered by an inspection manager.
// It owns exactly one director and one producer sub-record.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – unique human-readable film code.
//  Title     – film title.
//  Date      – production date (YYYY-MM-DD).
//  Subject   – short subject description.
//  Director  – owned director record.
//  Producer  – owned producer record.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Documentary struct {
	ID        uint64    `json:"id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Subject   string    `json:"subject"`
	Director  Person    `json:"director"`
	Producer  Person    `json:"producer"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
