package auth

// Claims representa la identidad resuelta a partir del token.
// El core solo necesita UserID; el resto es informativo.
type Claims struct {
	UserID   int64
	Email    string
	TenantID string
}

// Credentials es lo que el usuario presenta en /auth/login.
type Credentials struct {
	Email    string
	Password string
}

// TokenPair es opaco para el core: se devuelve tal cual al cliente.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}
