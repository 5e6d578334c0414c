package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/onlineretail/storefront/internal/report"
)

const dateLayout = "2006-01-02"

func parseDateRange(r *http.Request) (time.Time, time.Time, bool) {
	start, err := time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateLayout, r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	start, end, ok := parseDateRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "start and end must be YYYY-MM-DD")
		return
	}

	var revenue float64
	err = sess.WithReports(func(repo report.Repository) error {
		var err error
		revenue, err = repo.Revenue(r.Context(), start, end)
		return err
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"revenue": revenue})
}

func (s *Server) handleBestsellers(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	start, end, ok := parseDateRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "start and end must be YYYY-MM-DD")
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}

	var rows []report.ProductSales
	err = sess.WithReports(func(repo report.Repository) error {
		var err error
		rows, err = repo.Bestsellers(r.Context(), start, end, limit)
		return err
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	var rows []report.DailySales
	err = sess.WithReports(func(repo report.Repository) error {
		var err error
		rows, err = repo.SalesReport(r.Context())
		return err
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
