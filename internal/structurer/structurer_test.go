package structurer

import (
	"strings"
	"testing"

	"lexrag/internal/domain"
)

const sampleText = `TÜRKİYE CUMHURİYETİ ANAYASASI

BAŞLANGIÇ

Türk Vatanı ve Milletinin ebedi varlığını belirten bu Anayasa.

MADDE 1- Devletin şekli
Türkiye Devleti bir Cumhuriyettir.

MADDE 2- Cumhuriyetin nitelikleri
Türkiye Cumhuriyeti, demokratik, laik ve sosyal bir hukuk Devletidir.

MADDE 3- Devletin bütünlüğü
(1) Türkiye Devleti, ülkesi ve milletiyle bölünmez bir bütündür.
(2) Milli marşı "İstiklal Marşı"dır.

GEÇİCİ MADDE 1- İlk Cumhurbaşkanı seçimi hükümleri.
`

func TestStructure_ArticleHeaders(t *testing.T) {
	s := New()
	doc, err := s.Structure(sampleText, "anayasa.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}

	// preamble + 3 articles + 1 temporary article
	if len(doc.Units) != 5 {
		t.Fatalf("expected 5 top-level units, got %d", len(doc.Units))
	}
	if doc.Units[0].Kind != domain.UnitPreamble {
		t.Errorf("first unit should be preamble, got %v", doc.Units[0].Kind)
	}

	wantNumbers := []string{"1", "2", "3", "Geçici 1"}
	for i, want := range wantNumbers {
		u := doc.Units[i+1]
		if u.Kind != domain.UnitArticle {
			t.Errorf("unit %d: expected article, got %v", i+1, u.Kind)
		}
		if u.Number != want {
			t.Errorf("unit %d: expected number %q, got %q", i+1, want, u.Number)
		}
	}
}

func TestStructure_UnitsCoverSource(t *testing.T) {
	s := New()
	doc, err := s.Structure(sampleText, "anayasa.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}

	// Units are contiguous and in document order.
	prevEnd := 0
	for i, u := range doc.Units {
		if u.Start != prevEnd {
			t.Errorf("unit %d starts at %d, expected %d", i, u.Start, prevEnd)
		}
		if doc.RawText[u.Start:u.End] != u.Text {
			t.Errorf("unit %d text does not match its source span", i)
		}
		prevEnd = u.End
	}
	if prevEnd != len(sampleText) {
		t.Errorf("units end at %d, source is %d bytes", prevEnd, len(sampleText))
	}
}

func TestStructure_ClauseChildren(t *testing.T) {
	s := New()
	doc, err := s.Structure(sampleText, "anayasa.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}

	var article3 *domain.StructuredUnit
	for _, u := range doc.Units {
		if u.Kind == domain.UnitArticle && u.Number == "3" {
			article3 = u
		}
	}
	if article3 == nil {
		t.Fatal("article 3 not found")
	}

	// header lead-in + clauses (1) and (2)
	if len(article3.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(article3.Children))
	}
	if article3.Children[0].Number != "" {
		t.Errorf("leading child should be unnumbered, got %q", article3.Children[0].Number)
	}
	if article3.Children[1].Number != "1" || article3.Children[2].Number != "2" {
		t.Errorf("clause numbers wrong: %q, %q",
			article3.Children[1].Number, article3.Children[2].Number)
	}
	for i, c := range article3.Children {
		if c.Parent != article3 {
			t.Errorf("child %d missing parent back-reference", i)
		}
	}
}

func TestStructure_NoHeadersDegrades(t *testing.T) {
	s := New()
	text := "Bu metinde hiç madde başlığı yok. Sadece düz paragraflar var."
	doc, err := s.Structure(text, "plain.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}
	if len(doc.Units) != 1 {
		t.Fatalf("expected 1 fallback unit, got %d", len(doc.Units))
	}
	u := doc.Units[0]
	if u.Kind != domain.UnitPreamble || u.Number != "" {
		t.Errorf("fallback unit should be unnumbered preamble, got kind=%v number=%q", u.Kind, u.Number)
	}
	if u.Text != text {
		t.Error("fallback unit should carry the whole text")
	}
}

func TestStructure_EmptyText(t *testing.T) {
	s := New()
	doc, err := s.Structure("   \n\n  ", "empty.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}
	if len(doc.Units) != 0 {
		t.Errorf("expected no units for blank text, got %d", len(doc.Units))
	}
}

func TestStructure_PageAttribution(t *testing.T) {
	s := New()
	text := "MADDE 1- Birinci sayfa maddesi.\n\f\nMADDE 2- İkinci sayfa maddesi.\n"
	doc, err := s.Structure(text, "paged.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}
	var pages []int
	for _, u := range doc.Units {
		if u.Kind == domain.UnitArticle {
			pages = append(pages, u.Page)
		}
	}
	if len(pages) != 2 || pages[0] != 1 || pages[1] != 2 {
		t.Errorf("expected article pages [1 2], got %v", pages)
	}
}

func TestStructure_MidSentenceMaddeIgnored(t *testing.T) {
	s := New()
	text := "MADDE 5- Bu hüküm, Anayasanın 10 uncu maddesi ile birlikte okunur.\n"
	doc, err := s.Structure(text, "refs.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}
	count := 0
	for _, u := range doc.Units {
		if u.Kind == domain.UnitArticle {
			count++
		}
	}
	if count != 1 {
		t.Errorf("inline article reference should not open a unit, got %d articles", count)
	}
}

func TestStructure_LowercaseHeaderVariant(t *testing.T) {
	s := New()
	text := "Madde 12 – Herkes, kişiliğine bağlı dokunulmaz haklara sahiptir.\n"
	doc, err := s.Structure(text, "var.txt")
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}
	if len(doc.Units) != 1 || doc.Units[0].Number != "12" {
		t.Fatalf("expected single article 12, got %+v", doc.Units)
	}
	if !strings.HasPrefix(doc.Units[0].Text, "Madde 12") {
		t.Error("article text should start at its header")
	}
}
