package service

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// frontMatter is the YAML header of an article file
type frontMatter struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	PublishDate string `yaml:"publish_date"`
	Image       string `yaml:"image"`
	Summary     string `yaml:"summary"`
}

// Parser handles article markdown parsing
type Parser struct {
	md  goldmark.Markdown
	now func() time.Time
}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{
		md:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		now: time.Now,
	}
}

// Parse extracts an article from a markdown file with optional YAML front matter
func (p *Parser) Parse(slug string, content []byte) (*model.Article, error) {
	header, body, err := splitFrontMatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter of %s: %w", slug, err)
	}

	html, err := p.Render(body)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", slug, err)
	}

	article := &model.Article{
		Slug:      slug,
		Title:     orDefault(header.Title, "Título não encontrado"),
		Author:    orDefault(header.Author, "Autor desconhecido"),
		Image:     header.Image,
		Summary:   orDefault(header.Summary, "Resumo não disponível."),
		Body:      body,
		BodyHTML:  html,
		WordCount: len(strings.Fields(body)),
		Checksum:  p.calculateChecksum(content),
	}

	article.PublishDate = p.now().UTC()
	if header.PublishDate != "" {
		if t, err := parsePublishDate(header.PublishDate); err == nil {
			article.PublishDate = t
		}
	}

	return article, nil
}

// Render converts markdown to HTML
func (p *Parser) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// splitFrontMatter separates the YAML header from the body. Files without a header are all body.
func splitFrontMatter(content []byte) (frontMatter, string, error) {
	var header frontMatter

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	if !strings.HasPrefix(text, frontMatterDelimiter+"\n") {
		return header, strings.TrimSpace(text), nil
	}

	rest := text[len(frontMatterDelimiter)+1:]
	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx < 0 {
		return header, strings.TrimSpace(text), nil
	}

	if err := yaml.Unmarshal([]byte(rest[:idx]), &header); err != nil {
		return header, "", err
	}

	body := rest[idx+len(frontMatterDelimiter)+1:]
	return header, strings.TrimSpace(body), nil
}

func parsePublishDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized publish date %q", s)
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

// calculateChecksum computes MD5 hash of content
func (p *Parser) calculateChecksum(content []byte) string {
	hash := md5.Sum(content)
	return hex.EncodeToString(hash[:])
}
