package chunker

import (
	"fmt"
	"strings"
	"testing"

	"lexrag/internal/domain"
	"lexrag/internal/structurer"
)

func structure(t *testing.T, text string) *domain.StructuredDocument {
	t.Helper()
	doc, err := structurer.New().Structure(text, "test.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}
	return doc
}

func longArticle(number, sentence string, repeats int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MADDE %s- Uzun madde.\n", number)
	for i := 0; i < repeats; i++ {
		b.WriteString(sentence)
		b.WriteString(" ")
	}
	b.WriteString("\n")
	return b.String()
}

func TestAssemble_FittingArticleIsOneChunk(t *testing.T) {
	text := "MADDE 1- Devletin şekli\nTürkiye Devleti bir Cumhuriyettir.\n\nMADDE 2- Başkent\nBaşkenti Ankara'dır.\n"
	doc := structure(t, text)

	chunks, err := New(1200, 200).Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		want := []string{"1", "2"}[i]
		if len(ch.ArticleNumbers) != 1 || ch.ArticleNumbers[0] != want {
			t.Errorf("chunk %d: expected article [%s], got %v", i, want, ch.ArticleNumbers)
		}
		if !strings.Contains(ch.Text, "MADDE "+want) {
			t.Errorf("chunk %d should contain its article header", i)
		}
		if ch.Oversized {
			t.Errorf("chunk %d: fitting article flagged oversized", i)
		}
	}
}

func TestAssemble_SizeLimitRespected(t *testing.T) {
	text := longArticle("1", "Bu cümle kırpma testine hizmet eder ve yeterince uzundur.", 80)
	doc := structure(t, text)

	max := 300
	chunks, err := New(max, 50).Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("long article should split, got %d chunk(s)", len(chunks))
	}
	for i, ch := range chunks {
		if len(ch.Text) > max && !ch.Oversized {
			t.Errorf("chunk %d is %d bytes over limit %d without oversized flag", i, len(ch.Text), max)
		}
		if len(ch.ArticleNumbers) != 1 || ch.ArticleNumbers[0] != "1" {
			t.Errorf("chunk %d lost article attribution: %v", i, ch.ArticleNumbers)
		}
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	text := longArticle("7", "Tekrarlanabilirlik testi için örnek bir cümle.", 60) +
		"\nMADDE 8- Kısa madde.\n"
	doc := structure(t, text)
	a := New(250, 40)

	first, err := a.Assemble(doc)
	if err != nil {
		t.Fatalf("first Assemble failed: %v", err)
	}
	second, err := a.Assemble(doc)
	if err != nil {
		t.Fatalf("second Assemble failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d: id changed between runs (%s vs %s)", i, first[i].ID, second[i].ID)
		}
		if first[i].Text != second[i].Text {
			t.Errorf("chunk %d: text changed between runs", i)
		}
	}
}

func TestAssemble_SequenceMonotonic(t *testing.T) {
	text := longArticle("1", "Sıra numarası artışını doğrulayan cümle.", 50) +
		"MADDE 2- Kısa.\n" +
		longArticle("3", "Bir başka uzun madde gövdesi burada yer alır.", 50)
	doc := structure(t, text)

	chunks, err := New(200, 30).Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	for i, ch := range chunks {
		if ch.SequenceIndex != i {
			t.Fatalf("chunk %d has sequence index %d", i, ch.SequenceIndex)
		}
	}
}

func TestAssemble_ChunkTextIsSourceSlice(t *testing.T) {
	text := longArticle("4", "Kaynak dilimi eşleşmesini sınayan bir cümle daha.", 40)
	doc := structure(t, text)

	chunks, err := New(220, 40).Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	for i, ch := range chunks {
		if doc.RawText[ch.Start:ch.End] != ch.Text {
			t.Errorf("chunk %d text is not the slice [%d:%d] of the source", i, ch.Start, ch.End)
		}
	}
}

func TestAssemble_OverlapStaysInsideArticle(t *testing.T) {
	text := longArticle("1", "Birinci maddenin bindirmeli bölünecek gövdesi.", 40) +
		longArticle("2", "İkinci maddenin bindirmeli bölünecek gövdesi.", 40)
	doc := structure(t, text)

	chunks, err := New(200, 60).Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		sameArticle := len(prev.ArticleNumbers) == 1 && len(cur.ArticleNumbers) == 1 &&
			prev.ArticleNumbers[0] == cur.ArticleNumbers[0]
		if !sameArticle && cur.Start < prev.End {
			t.Errorf("chunks %d and %d overlap across an article boundary", i-1, i)
		}
	}
}

func TestAssemble_ClausePacking(t *testing.T) {
	clause := func(n int) string {
		return fmt.Sprintf("(%d) Bu fıkra yeterince uzun bir hüküm içerir ve pakete girer.\n", n)
	}
	text := "MADDE 9- Fıkralı madde.\n" + clause(1) + clause(2) + clause(3) + clause(4)
	doc := structure(t, text)

	// limit forces clause-window splitting but each window holds >1 clause
	chunks, err := New(160, 0).Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected clause windows to split, got %d chunk(s)", len(chunks))
	}
	for i, ch := range chunks {
		if len(ch.Text) > 160 && !ch.Oversized {
			t.Errorf("chunk %d exceeds limit without oversized flag", i)
		}
	}
}

func TestAssemble_OversizedUnbrokenRun(t *testing.T) {
	run := strings.Repeat("a", 500)
	text := "MADDE 1- " + run + "\n"
	doc := structure(t, text)

	chunks, err := New(100, 10).Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	var total int
	oversized := false
	for _, ch := range chunks {
		total += len(ch.Text)
		if ch.Oversized {
			oversized = true
		}
	}
	if !oversized {
		t.Error("unbroken run should yield at least one oversized chunk")
	}
	if total < 500 {
		t.Errorf("text was dropped: %d bytes covered of %d", total, len(text))
	}
}

func TestNew_GuardsArguments(t *testing.T) {
	a := New(0, -5)
	if a.maxChunkSize != 1200 || a.overlap != 0 {
		t.Errorf("defaults not applied: max=%d overlap=%d", a.maxChunkSize, a.overlap)
	}
	a = New(100, 100)
	if a.overlap >= a.maxChunkSize {
		t.Errorf("overlap %d not clamped below chunk size %d", a.overlap, a.maxChunkSize)
	}
}
