package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

var months = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}

// LongDate formats t as "02 de janeiro de 2006"
func LongDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

type sortOption struct {
	sort, order, label string
}

var sortOptions = []sortOption{
	{"date", "desc", "Mais recentes"},
	{"date", "asc", "Mais antigos"},
	{"title", "asc", "Título"},
	{"author", "asc", "Autor"},
}

func (o sortOption) href() string {
	return fmt.Sprintf("/artigos?sort=%s&order=%s", o.sort, o.order)
}

func (o sortOption) class(sortBy, order string) string {
	if o.sort == sortBy && o.order == order {
		return "px-3 py-1 rounded border bg-blue-600 text-white"
	}
	return "px-3 py-1 rounded border"
}

func articleURL(slug string) templ.SafeURL {
	return templ.URL("/artigos/" + slug)
}

func revisionDates(snapshots []model.ArticleSnapshot) string {
	dates := make([]string, len(snapshots))
	for i, s := range snapshots {
		dates[i] = s.SnapshotDate.Format("02/01/2006")
	}
	return strings.Join(dates, ", ")
}
