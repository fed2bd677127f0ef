package templates

import (
	"embed"
	"html/template"

	"ci-computer-dashboard/models"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"isSelected": models.IsSelected,
}

// Pages rendered by the controllers
var (
	Dashboard = parse("dashboard.html")
	QR        = parse("qr.html")
	TFlow     = parse("tflow.html")
)

func parse(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(files, "layout.html", name))
}
