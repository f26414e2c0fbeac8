package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/mindmetrics/dass21/internal/services"
)

// AssessmentCollection is the store collection holding scored assessments.
const AssessmentCollection = "dassassessment"

const defaultListLimit = 20

type Router struct {
	store Store
}

func NewRouter(store Store) *Router {
	return &Router{store: store}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", rt.handleRoot)
	mux.HandleFunc("/test", rt.handleDBTest)
	mux.HandleFunc("/api/score", rt.handleScore)
	mux.HandleFunc("/api/assessments", rt.handleListAssessments)
	mux.HandleFunc("/api/assessments/export", rt.handleExportCSV)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// GET / — service banner
func (rt *Router) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]any{"message": "DASS-21 Backend Running"})
}

// GET /test — database connectivity diagnostics
func (rt *Router) handleDBTest(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"backend":           "running",
		"database":          "not available",
		"database_url":      envStatus("DATABASE_URL"),
		"database_name":     envStatus("DATABASE_NAME"),
		"connection_status": "not connected",
		"collections":       []string{},
	}
	if rt.store != nil {
		if err := rt.store.Ping(); err != nil {
			resp["database"] = "error: " + err.Error()
		} else {
			resp["database"] = "available"
			resp["connection_status"] = "connected"
			if names, err := rt.store.ListCollections(); err == nil {
				if len(names) > 10 {
					names = names[:10]
				}
				resp["collections"] = names
				resp["database"] = "connected and working"
			} else {
				resp["database"] = "connected but error: " + err.Error()
			}
		}
	}
	writeJSON(w, resp)
}

func envStatus(key string) string {
	if os.Getenv(key) == "" {
		return "not set"
	}
	return "set"
}

// scoreRequest is the inbound assessment. Metadata fields are optional and
// are never interpreted by the scorer; they travel verbatim into the stored
// document.
type scoreRequest struct {
	StudentName  string `json:"student_name,omitempty"`
	StudentEmail string `json:"student_email,omitempty"`
	Age          *int   `json:"age,omitempty"`
	Context      string `json:"context,omitempty"`
	Answers      []int  `json:"answers"`
}

// POST /api/score
func (rt *Router) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req scoreRequest
	raw := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Re-decode the known fields out of the generic document so validation
	// sees typed values while the stored copy keeps every inbound field.
	b, _ := json.Marshal(raw)
	if err := json.Unmarshal(b, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Age != nil && (*req.Age < 5 || *req.Age > 120) {
		http.Error(w, "age must be between 5 and 120", http.StatusBadRequest)
		return
	}

	result, err := services.ScoreDASS21(req.Answers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Best-effort persistence: a failing store must never turn a computed
	// result into an error for the caller.
	doc := raw
	doc["depression_score"] = result.DepressionScore
	doc["anxiety_score"] = result.AnxietyScore
	doc["stress_score"] = result.StressScore
	doc["depression_severity"] = result.DepressionSeverity
	doc["anxiety_severity"] = result.AnxietySeverity
	doc["stress_severity"] = result.StressSeverity
	doc["total_score"] = result.TotalScore
	if id, err := rt.store.CreateDocument(AssessmentCollection, doc); err != nil {
		log.Printf("skip persistence: %v", err)
	} else {
		result.AssessmentID = id
	}

	writeJSON(w, result)
}

// GET /api/assessments?limit=N
func (rt *Router) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := queryLimit(r, defaultListLimit)
	docs, err := rt.store.GetDocuments(AssessmentCollection, limit)
	if err != nil {
		// Store trouble degrades to an empty listing, never a user error.
		log.Printf("list assessments: %v", err)
		docs = []map[string]any{}
	}
	if docs == nil {
		docs = []map[string]any{}
	}
	writeJSON(w, docs)
}

// GET /api/assessments/export?limit=N
func (rt *Router) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := queryLimit(r, 100)
	docs, err := rt.store.GetDocuments(AssessmentCollection, limit)
	if err != nil {
		log.Printf("export assessments: %v", err)
		docs = nil
	}
	rows := make([]services.AssessmentRow, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, services.AssessmentRow{
			ID:                 docString(d, "_id"),
			StudentName:        docString(d, "student_name"),
			Age:                docInt(d, "age"),
			DepressionScore:    docInt(d, "depression_score"),
			AnxietyScore:       docInt(d, "anxiety_score"),
			StressScore:        docInt(d, "stress_score"),
			DepressionSeverity: docString(d, "depression_severity"),
			AnxietySeverity:    docString(d, "anxiety_severity"),
			StressSeverity:     docString(d, "stress_severity"),
			TotalScore:         docInt(d, "total_score"),
		})
	}
	b, err := services.ExportAssessmentsCSV(rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=assessments.csv")
	_, _ = w.Write(b)
}

func queryLimit(r *http.Request, fallback int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// Stored documents round-trip through JSON, so numbers come back as float64.
func docInt(d map[string]any, key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func docString(d map[string]any, key string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return ""
}
