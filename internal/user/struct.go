package user

type User struct {
	ID        int64  `json:"user_id" form:"-"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password,omitempty" form:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type Credentials struct {
	UserID       int64
	PasswordHash string
}
