package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/config"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/service"
)

type fakeArticles struct {
	articles []model.Article
	err      error
}

func (f *fakeArticles) GetAllSorted(_ context.Context, _, _ string) ([]model.Article, error) {
	return f.articles, f.err
}

func (f *fakeArticles) GetRecent(_ context.Context, limit int) ([]model.Article, error) {
	if limit < len(f.articles) {
		return f.articles[:limit], f.err
	}
	return f.articles, f.err
}

func (f *fakeArticles) GetBySlug(_ context.Context, slug string) (*model.Article, error) {
	for i := range f.articles {
		if f.articles[i].Slug == slug {
			return &f.articles[i], nil
		}
	}
	return nil, f.err
}

func (f *fakeArticles) GetSnapshots(_ context.Context, _ string) ([]model.ArticleSnapshot, error) {
	return nil, nil
}

func (f *fakeArticles) CountArticles(_ context.Context) (int, error) {
	return len(f.articles), f.err
}

func (f *fakeArticles) GetTotalWordCount(_ context.Context) (int, error) {
	total := 0
	for _, a := range f.articles {
		total += a.WordCount
	}
	return total, f.err
}

type fakeAssistant struct {
	answer string
	err    error
	asked  string
}

func (f *fakeAssistant) Ask(_ context.Context, question, _ string) (string, error) {
	f.asked = question
	if strings.TrimSpace(question) == "" {
		return "", service.ErrEmptyQuestion
	}
	return f.answer, f.err
}

func newTestApp(articles ArticleReader, assistant Assistant) *fiber.App {
	app := fiber.New()
	Register(app, Deps{
		Site:      config.SiteConfig{Name: "Tempo de Atestado"},
		Articles:  articles,
		Assistant: assistant,
		Today: func() model.Date {
			return model.MustParseDate("01/04/2024")
		},
	})
	return app
}

func testArticles() *fakeArticles {
	return &fakeArticles{articles: []model.Article{{
		Slug:        "prazo-inss",
		Title:       "Prazo do INSS",
		Author:      "Equipe",
		PublishDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Summary:     "Quando pedir.",
		BodyHTML:    "<p>Conteúdo do artigo</p>",
		WordCount:   3,
	}}}
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPagesRender(t *testing.T) {
	app := newTestApp(testArticles(), &fakeAssistant{})

	tests := []struct {
		path string
		want string
	}{
		{"/", "Prazo do INSS"},
		{"/calculadora-de-atestado", "Aguardando dados..."},
		{"/artigos", "Prazo do INSS"},
		{"/artigos/prazo-inss", "Conteúdo do artigo"},
		{"/sobre", "Nenhum atestado é armazenado"},
		{"/beneficio-inss", "Tire suas dúvidas"},
		{"/healthz", "ok"},
	}

	for _, tt := range tests {
		status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if status != fiber.StatusOK {
			t.Fatalf("GET %s status = %d", tt.path, status)
		}
		if !strings.Contains(body, tt.want) {
			t.Fatalf("GET %s body does not contain %q", tt.path, tt.want)
		}
	}
}

func TestArticleNotFound(t *testing.T) {
	app := newTestApp(testArticles(), &fakeAssistant{})
	status, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/artigos/nada", nil))
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestArticlesStoreFailure(t *testing.T) {
	app := newTestApp(&fakeArticles{err: errors.New("db down")}, &fakeAssistant{})

	status, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/artigos", nil))
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}

	// the home page degrades instead of failing
	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	if status != fiber.StatusOK {
		t.Fatalf("home status = %d, want 200", status)
	}
}

func TestArticlesHTMXReturnsGrid(t *testing.T) {
	app := newTestApp(testArticles(), &fakeAssistant{})
	req := httptest.NewRequest(http.MethodGet, "/artigos?sort=title&order=asc", nil)
	req.Header.Set("HX-Request", "true")

	_, body := doRequest(t, app, req)
	if strings.Contains(body, "<html") || !strings.Contains(body, `id="article-grid"`) {
		t.Fatalf("htmx body = %s", body)
	}
}

func TestAskAIHandler(t *testing.T) {
	assistant := &fakeAssistant{answer: "<p>resposta</p>"}
	app := newTestApp(testArticles(), assistant)

	ask := func(body string) (int, string) {
		req := httptest.NewRequest(http.MethodPost, "/api/ask-ai", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return doRequest(t, app, req)
	}

	status, body := ask(`{"question":"Como pedir?","contextTitle":"Prazo"}`)
	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if status != fiber.StatusOK || resp.Answer != "<p>resposta</p>" {
		t.Fatalf("ask = %d %s", status, body)
	}
	if assistant.asked != "Como pedir?" {
		t.Fatalf("asked = %q", assistant.asked)
	}

	status, _ = ask(`{"question":""}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("empty question status = %d, want 400", status)
	}

	assistant.err = service.ErrAssistantUnavailable
	status, _ = ask(`{"question":"oi"}`)
	if status != fiber.StatusServiceUnavailable {
		t.Fatalf("unavailable status = %d, want 503", status)
	}

	assistant.err = errors.New("upstream")
	status, body = ask(`{"question":"oi"}`)
	if status != fiber.StatusInternalServerError || !strings.Contains(body, "Tente novamente") {
		t.Fatalf("failure = %d %s", status, body)
	}
}

func TestAssistantFormHandler(t *testing.T) {
	app := newTestApp(testArticles(), &fakeAssistant{answer: "<p>resposta</p>"})

	status, body := doRequest(t, app, formRequest("/assistente", url.Values{"question": {"Como pedir?"}}))
	if status != fiber.StatusOK || !strings.Contains(body, "<p>resposta</p>") {
		t.Fatalf("answer = %d %s", status, body)
	}

	status, body = doRequest(t, app, formRequest("/assistente", url.Values{"question": {""}}))
	if status != fiber.StatusOK || !strings.Contains(body, "Nenhuma pergunta foi fornecida.") {
		t.Fatalf("empty = %d %s", status, body)
	}
}
