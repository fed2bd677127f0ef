package controller

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ci-computer-dashboard/models"
	"ci-computer-dashboard/service"
	"ci-computer-dashboard/templates"
)

// DashboardController handles the dashboard pages, charts and JSON API
type DashboardController struct {
	dashboard service.DashboardServiceInterface
	charts    service.ChartServiceInterface
	snapshots service.SnapshotServiceInterface
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(
	dashboard service.DashboardServiceInterface,
	charts service.ChartServiceInterface,
	snapshots service.SnapshotServiceInterface,
) *DashboardController {
	return &DashboardController{
		dashboard: dashboard,
		charts:    charts,
		snapshots: snapshots,
	}
}

// dashboardPage is the template data of a dashboard page
type dashboardPage struct {
	*models.DashboardView
	SnapshotURL string
	PrevURL     string
	NextURL     string
}

// Index handles GET / by redirecting to the default dashboard
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/"+models.VariantV4+"/", http.StatusFound)
}

// Page returns the handler of GET /{variant}/?columns=...&machine_use=...&page=N
func (c *DashboardController) Page(variant string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireGet(w, r, "DashboardPage") {
			return
		}
		if r.URL.Path != "/"+variant+"/" {
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()
		view, err := c.dashboard.BuildView(r.Context(), variant, parseSelection(q))
		if err != nil {
			log.Printf("❌ DashboardPage: variant=%s: %v", variant, err)
			http.Error(w, fmt.Sprintf("Failed to build dashboard: %v", err), statusFor(err))
			return
		}

		page := dashboardPage{
			DashboardView: view,
			SnapshotURL:   pageURL("/snapshot/"+variant, q, 0),
		}
		if view.Page > 1 {
			page.PrevURL = pageURL("/"+variant+"/", q, view.Page-1)
		}
		if view.Page < view.PageCount {
			page.NextURL = pageURL("/"+variant+"/", q, view.Page+1)
		}

		var buf bytes.Buffer
		if err := templates.Dashboard.Execute(&buf, page); err != nil {
			log.Printf("❌ DashboardPage: Error rendering template: %v", err)
			http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Printf("❌ DashboardPage: Error writing response: %v", err)
		}
	}
}

// Chart handles GET /charts/{name}?machine_use=...
func (c *DashboardController) Chart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "Chart") {
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/charts/"), "/")
	machineUses := parseMulti(r.URL.Query(), "machine_use")

	var buf bytes.Buffer
	if err := c.charts.Render(r.Context(), name, machineUses, &buf); err != nil {
		log.Printf("❌ Chart: name=%s: %v", name, err)
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("❌ Chart: Error writing response: %v", err)
	}
}

// Snapshot handles GET /snapshot/{variant}?size=thumb|medium and returns the rendered page as PNG
func (c *DashboardController) Snapshot(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "Snapshot") {
		return
	}

	variant := strings.Trim(strings.TrimPrefix(r.URL.Path, "/snapshot/"), "/")
	if !isVariant(variant) {
		log.Printf("❌ Snapshot: unknown variant %q", variant)
		http.Error(w, "Unknown dashboard variant", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	size := q.Get("size")
	q.Del("size")
	if size != "" && size != service.SnapshotThumb && size != service.SnapshotMedium {
		http.Error(w, "Invalid size parameter. Must be 'thumb' or 'medium'", http.StatusBadRequest)
		return
	}

	png, err := c.snapshots.CaptureDashboard(r.Context(), variant, q)
	if err != nil {
		log.Printf("❌ Snapshot: %v", err)
		http.Error(w, fmt.Sprintf("Failed to capture dashboard: %v", err), http.StatusInternalServerError)
		return
	}

	png, err = service.ScaleSnapshot(png, size)
	if err != nil {
		log.Printf("❌ Snapshot: %v", err)
		http.Error(w, fmt.Sprintf("Failed to resize snapshot: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"dashboard_%s.png\"", variant))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Printf("❌ Snapshot: Error writing PNG response: %v", err)
	}
}

// Summary handles GET /api/summary
func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "Summary") {
		return
	}

	sum, err := c.dashboard.Summary(r.Context())
	if err != nil {
		log.Printf("❌ Summary: %v", err)
		http.Error(w, fmt.Sprintf("Failed to load summary: %v", err), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// AssetTags handles GET /api/asset-tags
func (c *DashboardController) AssetTags(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "AssetTags") {
		return
	}

	counts, err := c.dashboard.AssetTagCounts(r.Context())
	if err != nil {
		log.Printf("❌ AssetTags: %v", err)
		http.Error(w, fmt.Sprintf("Failed to count asset tags: %v", err), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// Devices handles GET /api/devices?machine_use=...
func (c *DashboardController) Devices(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "Devices") {
		return
	}

	groups, err := c.dashboard.DeviceGroups(r.Context(), parseMulti(r.URL.Query(), "machine_use"))
	if err != nil {
		log.Printf("❌ Devices: %v", err)
		http.Error(w, fmt.Sprintf("Failed to group devices: %v", err), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Versions handles GET /api/versions?machine_use=...
func (c *DashboardController) Versions(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "Versions") {
		return
	}

	groups, err := c.dashboard.VersionGroups(r.Context(), parseMulti(r.URL.Query(), "machine_use"))
	if err != nil {
		log.Printf("❌ Versions: %v", err)
		http.Error(w, fmt.Sprintf("Failed to group versions: %v", err), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Table handles GET /api/table?columns=...
func (c *DashboardController) Table(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "Table") {
		return
	}

	table, err := c.dashboard.Table(r.Context(), parseMulti(r.URL.Query(), "columns"))
	if err != nil {
		log.Printf("❌ Table: %v", err)
		http.Error(w, fmt.Sprintf("Failed to project table: %v", err), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func isVariant(variant string) bool {
	for _, v := range service.Variants() {
		if v == variant {
			return true
		}
	}
	return false
}

// pageURL rebuilds path with the current query, replacing the page number when page > 0
func pageURL(path string, q url.Values, page int) string {
	next := url.Values{}
	for k, v := range q {
		if k == "page" {
			continue
		}
		next[k] = v
	}
	if page > 0 {
		next.Set("page", strconv.Itoa(page))
	}
	if len(next) == 0 {
		return path
	}
	return path + "?" + next.Encode()
}
