// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// CSVSchema identifica o vocabulário de cabeçalhos de um upload
type CSVSchema string

const (
	SchemaGoalActual CSVSchema = "goal_actual"
	SchemaPercentage CSVSchema = "percentage"
)

// MetricKey identifica uma das cinco métricas acompanhadas
type MetricKey string

const (
	MetricClosedWon   MetricKey = "closed_won"
	MetricOppsPassed  MetricKey = "opps_passed_mrr"
	MetricCalls       MetricKey = "calls"
	MetricPEM         MetricKey = "pem"
	MetricOppsCreated MetricKey = "opps_count"
)

// MetricKeys define a ordem das quests em todas as respostas
var MetricKeys = []MetricKey{
	MetricClosedWon,
	MetricOppsPassed,
	MetricCalls,
	MetricPEM,
	MetricOppsCreated,
}

const DefaultTeam = "Sales Team"

type MetricValue struct {
	Goal    float64 `json:"goal"`
	Actual  float64 `json:"actual"`
	Percent float64 `json:"percent,omitempty"` // Apenas no schema de percentuais
}

type SalesMetrics struct {
	ClosedWon   MetricValue `json:"closed_won"`
	OppsPassed  MetricValue `json:"opps_passed_mrr"`
	Calls       MetricValue `json:"calls"`
	PEM         MetricValue `json:"pem"`
	OppsCreated MetricValue `json:"opps_count"`
}

func (m SalesMetrics) Get(key MetricKey) MetricValue {
	switch key {
	case MetricClosedWon:
		return m.ClosedWon
	case MetricOppsPassed:
		return m.OppsPassed
	case MetricCalls:
		return m.Calls
	case MetricPEM:
		return m.PEM
	case MetricOppsCreated:
		return m.OppsCreated
	}
	return MetricValue{}
}

func (m *SalesMetrics) Set(key MetricKey, value MetricValue) {
	switch key {
	case MetricClosedWon:
		m.ClosedWon = value
	case MetricOppsPassed:
		m.OppsPassed = value
	case MetricCalls:
		m.Calls = value
	case MetricPEM:
		m.PEM = value
	case MetricOppsCreated:
		m.OppsCreated = value
	}
}

// SalesRecord é o registro de performance de um vendedor em um snapshot
type SalesRecord struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar"`
	Team     string       `json:"team"`
	PhotoURL string       `json:"photo_url,omitempty"`
	Metrics  SalesMetrics `json:"metrics"`
}
