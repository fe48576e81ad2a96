package templates

import "fmt"

// HomeMetrics holds the content figures shown on the home page
type HomeMetrics struct {
	TotalArticles int
	TotalWords    int
	HasData       bool
}

// Summary is the sentence under the recent articles
func (m HomeMetrics) Summary() string {
	return fmt.Sprintf("%d %s, %d palavras de conteúdo.",
		m.TotalArticles, plural(m.TotalArticles, "artigo publicado", "artigos publicados"), m.TotalWords)
}
