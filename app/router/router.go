package router

import (
	"net/http"

	"ci-computer-dashboard/app/controller"
	"ci-computer-dashboard/metrics"
	"ci-computer-dashboard/service"
)

type Controllers struct {
	Dashboard   *controller.DashboardController
	QR          *controller.QRController
	StatusModel *controller.StatusModelController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Health and metrics
	mux.HandleFunc("/ping", pingHandler)
	mux.Handle("/metrics", metrics.Handler())

	// Dashboard variants: /tbl/, /v1/ ... /v4/
	mux.HandleFunc("/", controllers.Dashboard.Index)
	for _, variant := range service.Variants() {
		mux.HandleFunc("/"+variant+"/", controllers.Dashboard.Page(variant))
	}

	// Charts rendered into the dashboard iframes
	mux.HandleFunc("/charts/", controllers.Dashboard.Chart)

	// PNG snapshot of a dashboard variant
	mux.HandleFunc("/snapshot/", controllers.Dashboard.Snapshot)

	// JSON API
	mux.HandleFunc("/api/summary", controllers.Dashboard.Summary)
	mux.HandleFunc("/api/asset-tags", controllers.Dashboard.AssetTags)
	mux.HandleFunc("/api/devices", controllers.Dashboard.Devices)
	mux.HandleFunc("/api/versions", controllers.Dashboard.Versions)
	mux.HandleFunc("/api/table", controllers.Dashboard.Table)
	mux.HandleFunc("/api/model", controllers.StatusModel.Report)

	// QR generator
	mux.HandleFunc("/qrGen/", controllers.QR.Page)
	mux.HandleFunc("/qrGen/image", controllers.QR.Image)

	// Install status classifier
	mux.HandleFunc("/tflow/", controllers.StatusModel.Page)
}
