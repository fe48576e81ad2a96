package service

import (
	"strings"
	"testing"
	"time"
)

func TestParseArticleWithFrontMatter(t *testing.T) {
	content := []byte(`---
title: "Auxílio por incapacidade temporária"
author: Equipe
publish_date: 2024-05-10
image: /img/inss.png
summary: Quando pedir o benefício.
---

# Quando pedir

Depois de **15 dias** de afastamento.
`)

	a, err := NewParser().Parse("auxilio", content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Slug != "auxilio" || a.Title != "Auxílio por incapacidade temporária" || a.Author != "Equipe" {
		t.Fatalf("article = %+v", a)
	}
	if !a.PublishDate.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("publish date = %v", a.PublishDate)
	}
	if a.Image != "/img/inss.png" || a.Summary != "Quando pedir o benefício." {
		t.Fatalf("image/summary = %q %q", a.Image, a.Summary)
	}
	if !strings.Contains(a.BodyHTML, "<h1>Quando pedir</h1>") || !strings.Contains(a.BodyHTML, "<strong>15 dias</strong>") {
		t.Fatalf("html = %s", a.BodyHTML)
	}
	if a.WordCount != 9 {
		t.Fatalf("word count = %d, want 9", a.WordCount)
	}
	if len(a.Checksum) != 32 {
		t.Fatalf("checksum = %q", a.Checksum)
	}
}

func TestParseArticleDefaults(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := NewParser()
	p.now = func() time.Time { return fixed }

	a, err := p.Parse("sem-cabecalho", []byte("Apenas texto."))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Title != "Título não encontrado" || a.Author != "Autor desconhecido" || a.Summary != "Resumo não disponível." {
		t.Fatalf("defaults = %q %q %q", a.Title, a.Author, a.Summary)
	}
	if !a.PublishDate.Equal(fixed) {
		t.Fatalf("publish date = %v, want now", a.PublishDate)
	}

	a, err = p.Parse("data-ruim", []byte("---\ntitle: X\npublish_date: ontem\n---\ncorpo"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !a.PublishDate.Equal(fixed) || a.Body != "corpo" {
		t.Fatalf("article = %+v", a)
	}
}

func TestParseArticleBadFrontMatter(t *testing.T) {
	_, err := NewParser().Parse("quebrado", []byte("---\ntitle: [unterminated\n---\ncorpo"))
	if err == nil {
		t.Fatalf("expected front matter error")
	}
}

func TestChecksumChangesWithContent(t *testing.T) {
	p := NewParser()
	if p.calculateChecksum([]byte("a")) == p.calculateChecksum([]byte("b")) {
		t.Fatalf("checksums collide")
	}
}
