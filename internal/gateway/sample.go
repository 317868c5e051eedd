package gateway

import "github.com/vfg2006/sales-quest-api/internal/domain"

// SampleRecords são exibidos quando não há cache nem API disponível
func SampleRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		sample(1, "Sarah Johnson", "SJ", [5][2]float64{
			{25000, 32000}, {50000, 58000}, {100, 89}, {20, 24}, {8, 8},
		}),
		sample(2, "Mike Chen", "MC", [5][2]float64{
			{20000, 18500}, {40000, 45000}, {80, 76}, {15, 19}, {6, 6},
		}),
		sample(3, "Emma Williams", "EW", [5][2]float64{
			{22000, 28000}, {45000, 35000}, {90, 112}, {18, 15}, {7, 4},
		}),
	}
}

// sample recebe pares meta/realizado na ordem de domain.MetricKeys
func sample(id int, name, avatar string, values [5][2]float64) domain.SalesRecord {
	record := domain.SalesRecord{
		ID:     id,
		Name:   name,
		Avatar: avatar,
		Team:   domain.DefaultTeam,
	}
	for i, key := range domain.MetricKeys {
		record.Metrics.Set(key, domain.MetricValue{Goal: values[i][0], Actual: values[i][1]})
	}
	return record
}
