package services

import (
	"encoding/csv"
	"strings"
	"testing"
)

func readCSV(b []byte) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(string(b)))
	return r.ReadAll()
}

func TestExportAssessmentsCSV(t *testing.T) {
	rows := []AssessmentRow{
		{ID: "a1", StudentName: "Ada", Age: 21, DepressionScore: 5, DepressionSeverity: SeverityMild,
			AnxietyScore: 2, AnxietySeverity: SeverityNormal, StressScore: 8, StressSeverity: SeverityMild, TotalScore: 15},
		{ID: "a2", StudentName: "Ben", Age: 30, DepressionScore: 0, DepressionSeverity: SeverityNormal,
			AnxietyScore: 0, AnxietySeverity: SeverityNormal, StressScore: 0, StressSeverity: SeverityNormal, TotalScore: 0},
	}
	b, err := ExportAssessmentsCSV(rows)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	recs, err := readCSV(b)
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(recs) != 1+len(rows) {
		t.Fatalf("want %d rows, got %d", 1+len(rows), len(recs))
	}
	if got := strings.Join(recs[0], ","); got != "assessment_id,student_name,age,depression_score,depression_severity,anxiety_score,anxiety_severity,stress_score,stress_severity,total_score" {
		t.Fatalf("bad header: %s", got)
	}
	if recs[1][0] != "a1" || recs[1][4] != SeverityMild || recs[1][9] != "15" {
		t.Fatalf("bad first row: %v", recs[1])
	}
}

func TestExportAssessmentsCSVEmpty(t *testing.T) {
	b, err := ExportAssessmentsCSV(nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	recs, err := readCSV(b)
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("want header only, got %d rows", len(recs))
	}
}
