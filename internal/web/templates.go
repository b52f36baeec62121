package web

import (
	"embed"
	"html/template"
	"strings"

	"coinboard/internal/domain"
	"coinboard/pkg/format"
)

//go:embed templates/*.html templates/style.css
var assets embed.FS

var templateFuncs = template.FuncMap{
	"currency":   format.Currency,
	"percentage": format.Percentage,
	"large":      format.LargeNumber,
	"amount":     format.Amount,
	"count":      format.Count,
	"upper":      strings.ToUpper,
	"supply": func(s domain.Supply) string {
		v, ok := s.Value()
		if !ok {
			return ""
		}
		return format.Amount(v)
	},
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html"))
}
