package authenticating

import (
	"errors"
	"fmt"
)

var (
	// Falhas de login
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUserDisabled       = errors.New("usuário desativado")
	ErrUserNotFound       = errors.New("usuário não encontrado")

	// Falhas de token
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")

	// Falhas de cadastro
	ErrUserAlreadyExists   = errors.New("usuário já existe")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrWeakPassword        = errors.New("senha fraca")
	ErrInvalidRole         = errors.New("perfil de usuário inválido")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AuthError carrega o código da API junto do erro base.
// UserID é zero quando a falha acontece antes de o usuário ser identificado.
type AuthError struct {
	Err     error
	Code    string
	UserID  int
	Details string
}

func (e *AuthError) Error() string {
	if e.Details == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Details)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ForUser associa o erro ao usuário que tentou o login
func (e *AuthError) ForUser(userID int) *AuthError {
	e.UserID = userID
	return e
}

func NewAuthError(err error, code string, details string) *AuthError {
	return &AuthError{Err: err, Code: code, Details: details}
}

// IsCredentialsError agrupa as falhas que o login responde com a mesma mensagem
func IsCredentialsError(err error) bool {
	for _, target := range []error{ErrInvalidCredentials, ErrUserDisabled, ErrUserNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
