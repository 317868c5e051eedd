package settings

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrMissingWeightings = errors.New("pesos não informados")
	ErrNegativeWeight    = errors.New("pesos não podem ser negativos")
	ErrInvalidTotal      = errors.New("a soma dos pesos deve ser 100")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// SettingsError é um erro com contexto adicional para as configurações de pontuação
type SettingsError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Total   int    // Soma dos pesos recebidos (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SettingsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SettingsError) Unwrap() error {
	return e.Err
}

func NewSettingsError(err error, code string, details string) *SettingsError {
	return &SettingsError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
