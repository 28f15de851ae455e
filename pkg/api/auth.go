package api

// Session is the identity a token was issued for.
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  Session `json:"user"`
	Token string  `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User Session `json:"user"`
}
