// Package entity contains the core business objects of the project.
package entity

// Address is a delivery address. It is embedded into orders at checkout and
// into user profiles as the default shipping address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// IsComplete checks that every field is present.
func (a Address) IsComplete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.Country != ""
}
