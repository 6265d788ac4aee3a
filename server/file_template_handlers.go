package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/jrsteele09/gcn-portal/circulars"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

// Page templates rendered inside the document shell.
const (
	TemplateIndex        = "index.html"
	TemplateProfile      = "profile.html"
	TemplateCirculars    = "circulars.html"
	TemplateCircular     = "circular.html"
	TemplateCircularNew  = "circular_new.html"
	TemplateUnauthorized = "error_unauthorized.html"
	TemplateNotFound     = "error_not_found.html"
	TemplateUnexpected   = "error_unexpected.html"
)

var pageTemplates = []string{
	TemplateIndex,
	TemplateProfile,
	TemplateCirculars,
	TemplateCircular,
	TemplateCircularNew,
	TemplateUnauthorized,
	TemplateNotFound,
	TemplateUnexpected,
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"isoDate": circulars.FormatDateISO,
	"year": func() int {
		return time.Now().Year()
	},
}

// ParseTemplate parses a page template together with the document layout.
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}
