package handler

import "time"

// messageResponse is the envelope used for plain status messages and errors.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// loginRequest accepts the identifier under "email" or, for legacy clients,
// under "username".
type loginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type googleLoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type adminUserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Federated bool      `json:"federated"`
	CreatedAt time.Time `json:"created_at"`
}
