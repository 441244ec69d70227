package generator

import (
	"strings"
	"testing"

	"lexrag/internal/domain"
)

func TestBuildPrompt(t *testing.T) {
	results := []domain.ScoredChunk{
		{Chunk: domain.Chunk{Text: "MADDE 76- Onsekiz yaşını dolduran her Türk milletvekili seçilebilir.", ArticleNumbers: []string{"76"}}},
		{Chunk: domain.Chunk{Text: "Başlangıç metni."}},
	}
	prompt := BuildPrompt("Milletvekili seçilme yaşı kaçtır?", results)

	if !strings.Contains(prompt, "[1] MADDE 76:") {
		t.Error("numbered article header missing")
	}
	if !strings.Contains(prompt, "[2]\nBaşlangıç metni.") {
		t.Error("unnumbered chunk should get a bare index header")
	}
	if !strings.Contains(prompt, "SORU: Milletvekili seçilme yaşı kaçtır?") {
		t.Error("question missing from prompt")
	}
	if !strings.HasPrefix(prompt, systemPrompt) {
		t.Error("prompt should start with the system instruction")
	}
}
