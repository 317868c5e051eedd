package domain

// Weightings são os pesos percentuais de cada métrica (devem somar 100)
type Weightings struct {
	ClosedWon     int `json:"closed_won"`
	OppsPassedMRR int `json:"opps_passed_mrr"`
	Calls         int `json:"calls"`
	PEM           int `json:"pem"`
	OppsCount     int `json:"opps_count"`
}

func (w Weightings) Total() int {
	return w.ClosedWon + w.OppsPassedMRR + w.Calls + w.PEM + w.OppsCount
}

func (w Weightings) Get(key MetricKey) int {
	switch key {
	case MetricClosedWon:
		return w.ClosedWon
	case MetricOppsPassed:
		return w.OppsPassedMRR
	case MetricCalls:
		return w.Calls
	case MetricPEM:
		return w.PEM
	case MetricOppsCreated:
		return w.OppsCount
	}
	return 0
}

type SettingsResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Weightings *Weightings `json:"weightings,omitempty"`
}

type UpdateSettingsRequest struct {
	Weightings *Weightings `json:"weightings"`
}
