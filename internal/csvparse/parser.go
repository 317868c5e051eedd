// Package csvparse lê os uploads CSV de vendas para registros tipados
package csvparse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/pkg/utils"
)

var (
	ErrMalformedUpload = errors.New("erro ao interpretar o arquivo CSV, verifique o formato")
	ErrMissingColumns  = errors.New("colunas obrigatórias ausentes")
	ErrEmptyUpload     = errors.New("arquivo CSV sem cabeçalho")
	ErrUnknownSchema   = errors.New("schema de CSV desconhecido")
)

const (
	ColumnName     = "PAM"
	ColumnTeam     = "Team"
	ColumnPhotoURL = "Photo URL"

	utf8BOM = "\uFEFF"
)

type field int

const (
	fieldGoal field = iota
	fieldActual
	fieldPercent
)

type columnSpec struct {
	Header string
	Metric domain.MetricKey
	Field  field
}

var goalActualColumns = []columnSpec{
	{Header: "Calls Goal", Metric: domain.MetricCalls, Field: fieldGoal},
	{Header: "Calls Actual", Metric: domain.MetricCalls, Field: fieldActual},
	{Header: "PEM Goal", Metric: domain.MetricPEM, Field: fieldGoal},
	{Header: "PEM Actual", Metric: domain.MetricPEM, Field: fieldActual},
	{Header: "Opps Goal", Metric: domain.MetricOppsCreated, Field: fieldGoal},
	{Header: "Opps Actual", Metric: domain.MetricOppsCreated, Field: fieldActual},
	{Header: "Opps Passed Goal", Metric: domain.MetricOppsPassed, Field: fieldGoal},
	{Header: "Opps Passed Actual", Metric: domain.MetricOppsPassed, Field: fieldActual},
	{Header: "Closed Won Goal", Metric: domain.MetricClosedWon, Field: fieldGoal},
	{Header: "Closed Won Actual", Metric: domain.MetricClosedWon, Field: fieldActual},
}

var percentageColumns = []columnSpec{
	{Header: "Calls %", Metric: domain.MetricCalls, Field: fieldPercent},
	{Header: "PEM %", Metric: domain.MetricPEM, Field: fieldPercent},
	{Header: "Opps Actual %", Metric: domain.MetricOppsCreated, Field: fieldPercent},
	{Header: "Opps Passed %", Metric: domain.MetricOppsPassed, Field: fieldPercent},
	{Header: "Closed Won %", Metric: domain.MetricClosedWon, Field: fieldPercent},
}

// Parser lê CSVs de um único schema, escolhido na criação
type Parser struct {
	schema  domain.CSVSchema
	columns []columnSpec
}

func NewParser(schema domain.CSVSchema) (*Parser, error) {
	switch schema {
	case domain.SchemaGoalActual:
		return &Parser{schema: schema, columns: goalActualColumns}, nil
	case domain.SchemaPercentage:
		return &Parser{schema: schema, columns: percentageColumns}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
}

func (p *Parser) Schema() domain.CSVSchema {
	return p.schema
}

// RequiredColumns retorna os cabeçalhos que precisam existir no upload
func (p *Parser) RequiredColumns() []string {
	headers := []string{ColumnName}
	for _, c := range p.columns {
		headers = append(headers, c.Header)
	}
	return headers
}

// Parse lê o upload inteiro. Qualquer falha invalida o upload todo.
func (p *Parser) Parse(r io.Reader) ([]domain.SalesRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedUpload, ErrEmptyUpload)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedUpload, err)
	}

	index := indexHeader(header)
	if missing := p.missingColumns(index); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w: %s", ErrMalformedUpload, ErrMissingColumns, strings.Join(missing, ", "))
	}

	records := make([]domain.SalesRecord, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedUpload, err)
		}

		if isBlank(row) {
			continue
		}

		records = append(records, p.project(len(records)+1, row, index))
	}

	return records, nil
}

func (p *Parser) missingColumns(index map[string]int) []string {
	var missing []string
	for _, header := range p.RequiredColumns() {
		if _, ok := index[header]; !ok {
			missing = append(missing, header)
		}
	}
	return missing
}

func (p *Parser) project(id int, row []string, index map[string]int) domain.SalesRecord {
	cell := func(header string) string {
		i, ok := index[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	record := domain.SalesRecord{
		ID:       id,
		Name:     cell(ColumnName),
		Team:     cell(ColumnTeam),
		PhotoURL: cell(ColumnPhotoURL),
	}
	record.Avatar = Initials(record.Name)
	if record.Team == "" {
		record.Team = domain.DefaultTeam
	}

	for _, c := range p.columns {
		value := record.Metrics.Get(c.Metric)
		number := utils.ParseNumber(cell(c.Header))

		switch c.Field {
		case fieldGoal:
			value.Goal = number
		case fieldActual:
			value.Actual = number
		case fieldPercent:
			value.Percent = number
		}

		record.Metrics.Set(c.Metric, value)
	}

	return record
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if _, exists := index[h]; !exists {
			index[h] = i
		}
	}
	return index
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Initials gera o avatar a partir da primeira letra de cada palavra do nome
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		first := []rune(part)[0]
		b.WriteRune(unicode.ToUpper(first))
	}

	if b.Len() == 0 {
		return "XX"
	}
	return b.String()
}
