package controller

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"ci-computer-dashboard/service"
	"ci-computer-dashboard/templates"
)

// QRController handles the QR code generator page
type QRController struct {
	qr service.QRServiceInterface
}

// NewQRController creates a new QRController
func NewQRController(qr service.QRServiceInterface) *QRController {
	return &QRController{qr: qr}
}

type qrPage struct {
	Text        string
	Image       template.URL
	DownloadURL string
	Error       string
}

// Page handles GET/POST /qrGen/ with a single-line (GET) or multi-line (POST) text
func (c *QRController) Page(w http.ResponseWriter, r *http.Request) {
	var text string
	switch r.Method {
	case http.MethodGet:
		text = r.URL.Query().Get("text")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			log.Printf("❌ QRPage: Error parsing form: %v", err)
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		text = r.PostForm.Get("text")
	default:
		log.Printf("❌ QRPage: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := qrPage{Text: text}
	if strings.TrimSpace(text) != "" {
		uri, err := c.qr.GenerateDataURI(text)
		if err != nil {
			log.Printf("❌ QRPage: %v", err)
			page.Error = fmt.Sprintf("Failed to generate QR code: %v", err)
		} else {
			// data URIs are rejected by html/template unless marked safe
			page.Image = template.URL(uri)
			page.DownloadURL = "/qrGen/image?text=" + url.QueryEscape(text)
		}
	}

	var buf bytes.Buffer
	if err := templates.QR.Execute(&buf, page); err != nil {
		log.Printf("❌ QRPage: Error rendering template: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("❌ QRPage: Error writing response: %v", err)
	}
}

// Image handles GET /qrGen/image?text=... and returns the QR code as PNG
func (c *QRController) Image(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, "QRImage") {
		return
	}

	png, err := c.qr.GeneratePNG(r.URL.Query().Get("text"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrEmptyQRText) {
			status = http.StatusBadRequest
		}
		log.Printf("❌ QRImage: %v", err)
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Printf("❌ QRImage: Error writing PNG response: %v", err)
	}
}
