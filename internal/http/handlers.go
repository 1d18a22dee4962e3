package http

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"daycheck/internal/core"
	"daycheck/internal/csvio"
)

const (
	historyCacheKey = "history"
	statsCacheKey   = "stats"

	// maxImportBytes bounds an uploaded CSV history; years of daily
	// entries fit in a fraction of this.
	maxImportBytes = 1 << 20
)

type ratingJSON struct {
	Date  string  `json:"date"`
	Value *string `json:"value"`
	Notes string  `json:"notes,omitempty"`
}

type monthGroup struct {
	Month   string       `json:"month"`
	Ratings []ratingJSON `json:"ratings"`
}

type weekdayStat struct {
	Weekday string   `json:"weekday"`
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

type valueTotal struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type statsResponse struct {
	Average  *float64      `json:"average"`
	Totals   []valueTotal  `json:"totals"`
	Weekdays []weekdayStat `json:"weekdays"`
}

func toRatingJSON(r core.Rating) ratingJSON {
	out := ratingJSON{Date: r.Date.String(), Notes: r.Notes}
	if r.Value != nil {
		label := r.Value.Label()
		out.Value = &label
	}
	return out
}

// nilIfNaN maps the undefined-average sentinel to JSON null.
func nilIfNaN(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, toRatingJSON(s.repo.Today()))

	case http.MethodPut:
		var body struct {
			Value string `json:"value"`
			Notes string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		v, ok := core.ValueFromLabel(body.Value)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("unknown rating value %q", body.Value))
			return
		}

		rating := core.Rating{
			Date:  s.repo.Today().Date,
			Value: v.Ptr(),
			Notes: body.Notes,
		}
		s.repo.Set(r.Context(), rating)

		s.logger.InfoContext(r.Context(), "Rating recorded",
			"date", rating.Date.String(), "rating", body.Value)
		writeJSON(w, http.StatusOK, toRatingJSON(s.repo.Today()))

	default:
		w.Header().Set("Allow", "GET, PUT")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	groups, ok := s.historyCache.Get(historyCacheKey)
	if !ok {
		for _, g := range s.repo.GroupedByMonth() {
			month := monthGroup{Month: g[0].Date.MonthStart().Format("2006-01")}
			for _, rating := range g {
				month.Ratings = append(month.Ratings, toRatingJSON(rating))
			}
			groups = append(groups, month)
		}
		if groups == nil {
			groups = []monthGroup{}
		}
		s.historyCache.Set(historyCacheKey, groups)
	}

	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, ok := s.statsCache.Get(statsCacheKey)
	if !ok {
		stats = statsResponse{
			Average: nilIfNaN(s.repo.Average()),
			Totals:  []valueTotal{},
		}
		for _, vc := range s.repo.ValueTotals() {
			stats.Totals = append(stats.Totals, valueTotal{Value: vc.Value.Label(), Count: vc.Count})
		}
		for i, bucket := range s.repo.WeekdayBuckets() {
			stats.Weekdays = append(stats.Weekdays, weekdayStat{
				Weekday: core.WeekdayName(i),
				Average: nilIfNaN(core.Average(bucket)),
				Count:   len(bucket),
			})
		}
		s.statsCache.Set(statsCacheKey, stats)
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", csvio.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvio.Filename))
	_, _ = io.WriteString(w, s.repo.ExportCSV())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	if err := s.repo.ImportCSV(r.Context(), string(body)); err != nil {
		s.logger.WarnContext(r.Context(), "History import rejected", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
