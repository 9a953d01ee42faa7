package domain

// Account is an operator login for the club back office.
type Account struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
}
