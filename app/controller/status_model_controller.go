package controller

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"ci-computer-dashboard/models"
	"ci-computer-dashboard/service"
	"ci-computer-dashboard/templates"
)

// StatusModelController serves the install status classifier report
type StatusModelController struct {
	model service.StatusModelServiceInterface
}

// NewStatusModelController creates a new StatusModelController
func NewStatusModelController(model service.StatusModelServiceInterface) *StatusModelController {
	return &StatusModelController{model: model}
}

type tflowPage struct {
	Report *models.TrainingReport
	Error  string
}

// Page handles GET /tflow/
func (c *StatusModelController) Page(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "StatusModelPage") {
		return
	}

	report, err := c.model.Train(r.Context())
	page := tflowPage{Report: report}
	if err != nil {
		if !errors.Is(err, service.ErrNotEnoughData) {
			log.Printf("❌ StatusModelPage: %v", err)
			http.Error(w, "Failed to train model", http.StatusInternalServerError)
			return
		}
		log.Printf("⚠️  StatusModelPage: %v", err)
		page.Error = err.Error()
	}

	var buf bytes.Buffer
	if err := templates.TFlow.Execute(&buf, page); err != nil {
		log.Printf("❌ StatusModelPage: Error rendering template: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("❌ StatusModelPage: Error writing response: %v", err)
	}
}

// Report handles GET /api/model and returns the training report as JSON
func (c *StatusModelController) Report(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "StatusModelReport") {
		return
	}

	report, err := c.model.Train(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrNotEnoughData) {
			status = http.StatusUnprocessableEntity
		}
		log.Printf("❌ StatusModelReport: %v", err)
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
