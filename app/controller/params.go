package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ci-computer-dashboard/models"
	"ci-computer-dashboard/service"
	"ci-computer-dashboard/summary"
)

// parseMulti reads a repeated query parameter.
// nil means the parameter was not sent; a lone empty value is an explicit empty selection.
// Comma separated values are accepted too.
func parseMulti(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}

	values := []string{}
	seen := make(map[string]bool)
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			values = append(values, part)
		}
	}
	return values
}

// parseSelection reads the dashboard selection from the query string
func parseSelection(q url.Values) models.Selection {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}
	return models.Selection{
		Columns:     parseMulti(q, "columns"),
		MachineUses: parseMulti(q, "machine_use"),
		Page:        page,
	}
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, summary.ErrUnknownColumn):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownVariant), errors.Is(err, service.ErrUnknownChart):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding JSON response: %v", err)
	}
}

func requireGet(w http.ResponseWriter, r *http.Request, handler string) bool {
	if r.Method != http.MethodGet {
		log.Printf("❌ %s: Method not allowed: %s", handler, r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
