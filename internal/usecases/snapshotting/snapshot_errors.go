package snapshotting

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrNoSalesData     = errors.New("nenhum dado de vendas informado")
	ErrMalformedUpload = errors.New("arquivo CSV inválido")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")

	ErrGenerateID = errors.New("erro ao gerar ID do snapshot")
)

// SnapshotError é um erro com contexto adicional para uploads de dados de vendas
type SnapshotError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	SnapshotID string // ID do snapshot envolvido (quando aplicável)
	Details    string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SnapshotError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SnapshotError) Unwrap() error {
	return e.Err
}

func NewSnapshotError(err error, code string, details string) *SnapshotError {
	return &SnapshotError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
