package session

// Identity is the user a session token resolves to.
type Identity struct {
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
