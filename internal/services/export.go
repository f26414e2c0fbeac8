package services

import (
	"bytes"
	"encoding/csv"
)

// AssessmentRow is one stored assessment flattened for CSV export.
type AssessmentRow struct {
	ID                 string
	StudentName        string
	Age                int
	DepressionScore    int
	AnxietyScore       int
	StressScore        int
	DepressionSeverity string
	AnxietySeverity    string
	StressSeverity     string
	TotalScore         int
}

// ExportAssessmentsCSV renders stored assessments into a CSV document,
// one row per assessment in the order given.
func ExportAssessmentsCSV(rows []AssessmentRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{
		"assessment_id", "student_name", "age",
		"depression_score", "depression_severity",
		"anxiety_score", "anxiety_severity",
		"stress_score", "stress_severity",
		"total_score",
	})
	for _, r := range rows {
		rec := []string{
			r.ID,
			r.StudentName,
			itoa(r.Age),
			itoa(r.DepressionScore),
			r.DepressionSeverity,
			itoa(r.AnxietyScore),
			r.AnxietySeverity,
			itoa(r.StressScore),
			r.StressSeverity,
			itoa(r.TotalScore),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func itoa(i int) string {
	// local small int->string; scores and ages stay well within range
	if i == 0 {
		return "0"
	}
	neg := false
	if i < 0 {
		neg = true
		i = -i
	}
	var b [20]byte
	bp := len(b)
	for i > 0 {
		bp--
		b[bp] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		bp--
		b[bp] = '-'
	}
	return string(b[bp:])
}
