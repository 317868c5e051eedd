package csvparse

import "github.com/vfg2006/sales-quest-api/internal/domain"

const TemplateFilename = "sales_quest_template.csv"

const goalActualTemplate = `PAM,Calls Goal,Calls Actual,Calls %,PEM Goal,PEM Actual,PEM %,Opps Goal,Opps Actual,Opps Actual %,Opps Passed Goal,Opps Passed Actual,Opps Passed %,Closed Won Goal,Closed Won Actual,Closed Won %
Sarah Johnson,100,89,89,20,24,120,8,8,100,50000,58000,116,25000,32000,128
Mike Chen,80,76,95,15,19,127,6,6,100,40000,45000,113,20000,18500,93
Emma Williams,90,112,124,18,15,83,7,4,57,45000,35000,78,22000,28000,127
David Rodriguez,85,82,96,16,14,88,5,3,60,35000,28000,80,18000,22000,122
Lisa Thompson,95,103,108,22,25,114,9,7,78,55000,62000,113,30000,35000,117
Alex Kim,75,71,95,12,16,133,4,5,125,30000,38000,127,15000,19000,127
`

const percentageTemplate = `PAM,Photo URL,Calls %,PEM %,Opps Actual %,Opps Passed %,Closed Won %
Sarah Johnson,,89,120,100,116,128
Mike Chen,,95,127,100,113,93
Emma Williams,,124,83,57,78,127
David Rodriguez,,96,88,60,80,122
Lisa Thompson,,108,114,78,113,117
Alex Kim,,95,133,125,127,127
`

// Template retorna o CSV modelo para download no schema informado
func Template(schema domain.CSVSchema) string {
	if schema == domain.SchemaPercentage {
		return percentageTemplate
	}
	return goalActualTemplate
}
