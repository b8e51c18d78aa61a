// internal/handler/ui_handler.go
package handler

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

// UIHandler serves the browser-facing routes: the customer form, the
// favicon placeholder and the environment check.
type UIHandler struct {
	TemplateDir string
	// LookupEnv defaults to os.LookupEnv
	LookupEnv func(string) (string, bool)
}

func NewUIHandler(templateDir string) *UIHandler {
	return &UIHandler{
		TemplateDir: templateDir,
		LookupEnv:   os.LookupEnv,
	}
}

type formData struct {
	Context string
	Fields  []string
}

// Favicon answers with no content so browsers stop asking
func (h *UIHandler) Favicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// TestEnv reports MONGODB_URL as the process sees it right now
func (h *UIHandler) TestEnv(w http.ResponseWriter, r *http.Request) {
	lookup := h.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var mongoURL *string
	if v, ok := lookup("MONGODB_URL"); ok {
		mongoURL = &v
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"MONGODB_URL": mongoURL,
	})
}

// Form renders the customer entry page
func (h *UIHandler) Form(w http.ResponseWriter, r *http.Request) {
	// parsed per request so template edits show up without a restart
	tmpl, err := template.ParseFiles(filepath.Join(h.TemplateDir, "customer.html"))
	if err != nil {
		log.Println("❌ Failed to load template:", err)
		renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, formData{Context: "Rendering", Fields: model.FeatureNames}); err != nil {
		log.Println("❌ Failed to render template:", err)
	}
}

func renderError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": false,
		"error":  err.Error(),
	})
}
