package citation

import (
	"strings"
	"testing"

	"lexrag/internal/confidence"
	"lexrag/internal/domain"
)

func scored(text string, numbers []string, raw float64) domain.ScoredChunk {
	return domain.ScoredChunk{
		Chunk: domain.Chunk{
			Text:           text,
			SourceFile:     "anayasa.txt",
			Page:           3,
			ArticleNumbers: numbers,
		},
		RawScore: raw,
	}
}

func TestAssemble_PreservesOrderAndFields(t *testing.T) {
	scorer := confidence.New(confidence.Options{Scale: "unit"})
	a := New(scorer, 200)

	got := a.Assemble([]domain.ScoredChunk{
		scored("MADDE 76- Milletvekili seçilme yeterliliği.", []string{"76"}, 0.9),
		scored("MADDE 77- Seçim dönemi.", []string{"77"}, 0.5),
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(got))
	}
	if got[0].Article != "Madde 76" || got[1].Article != "Madde 77" {
		t.Errorf("ordering or labels wrong: %q, %q", got[0].Article, got[1].Article)
	}
	if got[0].SourceFile != "anayasa.txt" || got[0].Page != 3 {
		t.Errorf("source metadata not carried: %+v", got[0])
	}
	if got[0].Score != 0.9 || got[1].Score != 0.5 {
		t.Errorf("scores not normalized consistently: %v, %v", got[0].Score, got[1].Score)
	}
}

func TestAssemble_ScoreMatchesConfidenceNormalization(t *testing.T) {
	scorer := confidence.New(confidence.Options{Scale: "cosine"})
	a := New(scorer, 200)

	got := a.Assemble([]domain.ScoredChunk{scored("metin", []string{"5"}, 0.5)})
	if got[0].Score != scorer.Normalize(0.5) {
		t.Errorf("citation score %v disagrees with scorer %v", got[0].Score, scorer.Normalize(0.5))
	}
}

func TestPreview_Truncation(t *testing.T) {
	scorer := confidence.New(confidence.Options{})
	a := New(scorer, 20)

	long := strings.Repeat("çok uzun metin ", 10)
	got := a.Assemble([]domain.ScoredChunk{scored(long, nil, 0.5)})
	preview := got[0].Preview
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("long preview should end with ellipsis: %q", preview)
	}
	if n := len([]rune(strings.TrimSuffix(preview, "..."))); n > 20 {
		t.Errorf("preview is %d runes, limit 20", n)
	}

	got = a.Assemble([]domain.ScoredChunk{scored("kısa", nil, 0.5)})
	if got[0].Preview != "kısa" {
		t.Errorf("short text should pass through, got %q", got[0].Preview)
	}
}

func TestPreview_RuneSafe(t *testing.T) {
	scorer := confidence.New(confidence.Options{})
	a := New(scorer, 5)

	got := a.Assemble([]domain.ScoredChunk{scored("ğüşiöçĞÜŞİÖÇ sonrası", nil, 0.5)})
	for _, r := range got[0].Preview {
		if r == '�' {
			t.Fatalf("preview split a multibyte rune: %q", got[0].Preview)
		}
	}
}

func TestArticleLabel(t *testing.T) {
	cases := []struct {
		numbers []string
		want    string
	}{
		{nil, ""},
		{[]string{"76"}, "Madde 76"},
		{[]string{"Geçici 3"}, "Geçici Madde 3"},
		{[]string{"12", "13"}, "Madde 12, 13"},
	}
	for _, c := range cases {
		if got := articleLabel(c.numbers); got != c.want {
			t.Errorf("articleLabel(%v) = %q, expected %q", c.numbers, got, c.want)
		}
	}
}
