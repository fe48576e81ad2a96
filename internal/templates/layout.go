package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"github.com/a-h/templ"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/config"
)

var navLinks = []struct {
	href  templ.SafeURL
	label string
}{
	{"/", "Início"},
	{"/calculadora-de-atestado", "Calculadora"},
	{"/artigos", "Artigos"},
	{"/beneficio-inss", "Benefício INSS"},
	{"/sobre", "Sobre"},
	{"/contato", "Contato"},
}

func adSenseScriptURL(site config.SiteConfig) templ.SafeURL {
	return templ.URL("https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=" + site.AdSenseClient)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
