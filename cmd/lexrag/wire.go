package main

import (
	"fmt"
	"time"

	"lexrag/internal/chunker"
	memchunks "lexrag/internal/chunkstore/memory"
	sqlitechunks "lexrag/internal/chunkstore/sqlite"
	"lexrag/internal/citation"
	"lexrag/internal/config"
	"lexrag/internal/confidence"
	"lexrag/internal/domain"
	"lexrag/internal/embedding/openai"
	"lexrag/internal/embedding/tfidf"
	ollamagen "lexrag/internal/generator/ollama"
	"lexrag/internal/retriever"
	"lexrag/internal/service"
	"lexrag/internal/structurer"
	"lexrag/internal/summarizer"
	"lexrag/internal/tui"
	memindex "lexrag/internal/vectorstore/memory"
	"lexrag/internal/vectorstore/qdrant"
)

var _ tui.QueryPort = (*service.Pipeline)(nil)

// buildPipeline assembles the full pipeline from config. The returned
// cleanup closes the chunk store and must be called before exit.
func buildPipeline(cfg *config.AppConfig) (*service.Pipeline, func() error, error) {
	embedder, err := buildEmbedder(cfg.Embedder)
	if err != nil {
		return nil, nil, err
	}
	index, err := buildVectorStore(cfg.VectorStore)
	if err != nil {
		return nil, nil, err
	}
	chunks, err := buildChunkStore(cfg.ChunkStore)
	if err != nil {
		return nil, nil, err
	}

	scorer := confidence.New(confidence.Options{
		Scale:           cfg.Confidence.Scale,
		HighThreshold:   cfg.Confidence.HighThreshold,
		MediumThreshold: cfg.Confidence.MediumThreshold,
	})
	deps := service.Deps{
		Structurer: structurer.New(),
		Assembler:  chunker.New(cfg.Chunking.MaxChunkSize, cfg.Chunking.ChunkOverlap),
		Embedder:   embedder,
		Index:      index,
		Chunks:     chunks,
		Retriever: retriever.New(embedder, index, chunks, retriever.Options{
			TopK:            cfg.Retrieval.TopK,
			SimilarityFloor: cfg.Retrieval.SimilarityFloor,
			DedupByArticle:  cfg.Retrieval.DedupEnabled(),
		}),
		Scorer:              scorer,
		Citations:           citation.New(scorer, cfg.Retrieval.PreviewLength),
		Generator:           buildGenerator(cfg.Generator),
		Summarizer:          summarizer.NewFrequencySummarizer(),
		SummaryMaxSentences: cfg.Summarizer.MaxSentences,
	}
	pipeline := service.New(deps)
	cleanup := func() error { return chunks.Close() }
	return pipeline, cleanup, nil
}

func buildEmbedder(cfg config.EmbedderConfig) (domain.Embedder, error) {
	switch cfg.Type {
	case "", "tfidf":
		return tfidf.NewEmbedder(), nil
	case "openai":
		oc := cfg.OpenAI
		if oc == nil {
			oc = &config.OpenAIEmbedderConfig{}
		}
		return openai.NewClient(openai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Type)
	}
}

func buildVectorStore(cfg config.VectorStoreConfig) (domain.VectorStore, error) {
	switch cfg.Type {
	case "", "memory":
		return memindex.New(), nil
	case "qdrant":
		qc := cfg.Qdrant
		if qc == nil {
			return nil, fmt.Errorf("vector_store.qdrant section is required for type qdrant")
		}
		return qdrant.New(qdrant.Config{
			URL:        qc.URL,
			APIKey:     qc.APIKey,
			Collection: qc.Collection,
			Timeout:    time.Duration(qc.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.Type)
	}
}

func buildChunkStore(cfg config.ChunkStoreConfig) (domain.ChunkStore, error) {
	switch cfg.Type {
	case "memory":
		return memchunks.New(), nil
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "lexrag.db"
		}
		return sqlitechunks.New(path)
	default:
		return nil, fmt.Errorf("unknown chunk store type %q", cfg.Type)
	}
}

func buildGenerator(cfg config.GeneratorConfig) domain.Generator {
	switch cfg.Type {
	case "ollama":
		oc := cfg.Ollama
		if oc == nil {
			oc = &config.OllamaGeneratorConfig{}
		}
		return ollamagen.New(ollamagen.Config{
			BaseURL:     oc.BaseURL,
			Model:       oc.Model,
			Temperature: oc.Temperature,
			MaxTokens:   oc.MaxTokens,
			Timeout:     time.Duration(oc.TimeoutSecs) * time.Second,
		})
	default:
		return nil
	}
}
