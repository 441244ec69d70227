// Package generator holds the downstream answer-generation boundary:
// a prompt builder over retrieved context and the narrow Complete
// interface implemented by concrete backends.
package generator

import (
	"fmt"
	"strings"

	"lexrag/internal/domain"
)

const systemPrompt = "Sen bir Türk Anayasa Hukuku uzmanısın. Aşağıdaki anayasa maddelerine dayanarak soruyu Türkçe cevapla. Kesin ve net ol, ilgili madde numaralarını belirt. Hukuki olmayan yorumlardan kaçın."

// BuildPrompt renders the retrieved chunks as numbered article blocks
// followed by the user question. The answer is constrained to the
// provided provisions and asked to cite article numbers.
func BuildPrompt(query string, results []domain.ScoredChunk) string {
	var context []string
	for i, r := range results {
		header := fmt.Sprintf("[%d]", i+1)
		if len(r.Chunk.ArticleNumbers) > 0 {
			header = fmt.Sprintf("[%d] MADDE %s:", i+1, strings.Join(r.Chunk.ArticleNumbers, ", "))
		}
		context = append(context, header+"\n"+strings.TrimSpace(r.Chunk.Text))
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nİLGİLİ ANAYASA MADDELERİ:\n")
	b.WriteString(strings.Join(context, "\n\n"))
	b.WriteString("\n\nSORU: ")
	b.WriteString(query)
	b.WriteString("\n\nCevabını sadece verilen maddelerle sınırlı tut. Madde numaralarını belirt (örn: \"MADDE 76\").")
	return b.String()
}
