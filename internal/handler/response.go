package handler

import (
	"bytes"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// pageTemplates parses the layout and the listing page from templates.
// base.html defines "base" with a {{template "content" .}} placeholder;
// reminders.html fills it.
func pageTemplates(templates fs.FS) (*template.Template, error) {
	return template.ParseFS(templates, "base.html", "reminders.html")
}

// render executes the "base" template into a buffer first, so a template
// error can still produce a clean 500 instead of a half-written page.
func render(w http.ResponseWriter, logger *slog.Logger, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		logger.Error("failed to render template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("failed to write response", slog.String("error", err.Error()))
	}
}

// redirectHome sends the browser back to the listing page. 303 makes the
// browser follow up with a GET even after a POST.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
