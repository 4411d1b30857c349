package dto

// AuthenticateRequest cuerpo de POST /auth/authenticate.
type AuthenticateRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// AuthenticateResponse respuesta exitosa de /auth/authenticate.
type AuthenticateResponse struct {
	Token       string   `json:"token"`
	Authorities []string `json:"authorities"`
	ID          int64    `json:"id"`
}
