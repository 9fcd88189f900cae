package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Dteebaba/Survey-Agent/dataset"
	"github.com/Dteebaba/Survey-Agent/engine"
	"github.com/Dteebaba/Survey-Agent/export"
	"github.com/Dteebaba/Survey-Agent/plan"
	"github.com/Dteebaba/Survey-Agent/profile"
)

type sessionPage struct {
	Session *Session
	Profile *profile.Profile
	Request string
	Error   string
}

type resultSheet struct {
	Name string
	Rows int
}

type resultPage struct {
	Session     *Session
	Explanation string
	Warnings    []engine.Warning
	Sheets      []resultSheet
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := struct{ MaxUploadMB int64 }{MaxUploadMB: s.cfg.MaxUploadBytes >> 20}
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("Template error: %v", err)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	ds, err := dataset.ParseFile(header.Filename, data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Parse error: %v", err), http.StatusBadRequest)
		return
	}
	if s.cfg.MaxRows > 0 && ds.RowCount() > s.cfg.MaxRows {
		http.Error(w, fmt.Sprintf("Too many rows (> %d)", s.cfg.MaxRows), http.StatusBadRequest)
		return
	}

	prof := profile.Build(ds, profile.Options{SampleSize: s.cfg.SampleSize})

	// Summary is advisory; an AI error never blocks the upload.
	summary := ""
	if s.translator != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
		defer cancel()
		summary, err = s.translator.SummarizeProfile(ctx, prof)
		if err != nil {
			log.Printf("⚠️ Summary failed for %s: %v", header.Filename, err)
			summary = ""
		}
	}

	sess := s.sessions.Create(header.Filename, ds, prof, summary)
	log.Printf("📄 Uploaded %s: %d rows, %d columns (session %s)",
		header.Filename, ds.RowCount(), ds.ColumnCount(), sess.ID)

	http.Redirect(w, r, "/session?id="+sess.ID, http.StatusSeeOther)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(r.URL.Query().Get("id"))
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}
	s.renderSession(w, sess, "", "")
}

func (s *Server) renderSession(w http.ResponseWriter, sess *Session, request, errMsg string) {
	page := sessionPage{Session: sess, Profile: sess.Profile, Request: request, Error: errMsg}
	if err := sessionTemplate.Execute(w, page); err != nil {
		log.Printf("Template error: %v", err)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	sess, ok := s.sessions.Get(r.FormValue("session"))
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}
	request := r.FormValue("request")
	if request == "" {
		s.renderSession(w, sess, "", "Enter a request first.")
		return
	}
	if s.translator == nil {
		s.renderSession(w, sess, request, "No AI provider configured; set OPENAI_API_KEY.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	p, err := s.translator.CreatePlan(ctx, request, sess.Profile)
	if err != nil {
		s.renderSession(w, sess, request, fmt.Sprintf("Plan creation failed: %v", err))
		return
	}

	vp, err := plan.Validate(p, sess.Profile)
	if err != nil {
		s.renderSession(w, sess, request, fmt.Sprintf("The plan referenced something this dataset does not have: %v", err))
		return
	}

	result, err := engine.Execute(vp, sess.Dataset)
	if err != nil {
		s.renderSession(w, sess, request, fmt.Sprintf("Execution failed: %v", err))
		return
	}
	s.sessions.SetResult(sess.ID, p, result)

	page := resultPage{Session: sess, Explanation: vp.Explanation, Warnings: result.Warnings}
	for _, sheet := range result.Sheets {
		page.Sheets = append(page.Sheets, resultSheet{Name: sheet.Name, Rows: sheet.Data.RowCount()})
	}
	if err := resultTemplate.Execute(w, page); err != nil {
		log.Printf("Template error: %v", err)
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(r.URL.Query().Get("session"))
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}
	_, result, ok := s.sessions.Result(sess.ID)
	if !ok {
		http.Error(w, "No results yet", http.StatusNotFound)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		name := r.URL.Query().Get("sheet")
		data, ok := result.Sheet(name)
		if !ok {
			http.Error(w, "Unknown sheet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
		if err := export.WriteCSV(w, data); err != nil {
			log.Printf("CSV export error: %v", err)
		}
	case "", "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="results.xlsx"`)
		if err := export.WriteXLSX(w, result); err != nil {
			log.Printf("XLSX export error: %v", err)
		}
	default:
		http.Error(w, "Unknown format", http.StatusBadRequest)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}
