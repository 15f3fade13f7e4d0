package pipeline

import (
	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/embedding"
	"github.com/matsen/citegraph/internal/grobid"
	"github.com/matsen/citegraph/internal/ner"
	"github.com/matsen/citegraph/internal/openaire"
	"github.com/matsen/citegraph/internal/openalex"
	"github.com/matsen/citegraph/internal/reconcile"
	"github.com/matsen/citegraph/internal/similarity"
	"github.com/matsen/citegraph/internal/source"
)

// FromConfig wires a pipeline over the real service clients. Source
// priority is fixed: OpenAIRE first, OpenAlex second.
func FromConfig(cfg *config.Config, logf func(format string, args ...any)) *Pipeline {
	var grobidOpts []grobid.Option
	if cfg.Grobid.URL != "" {
		grobidOpts = append(grobidOpts, grobid.WithBaseURL(cfg.Grobid.URL))
	}
	extractor := grobid.NewClient(grobidOpts...)

	var nerOpts []ner.Option
	if cfg.NER.URL != "" {
		nerOpts = append(nerOpts, ner.WithBaseURL(cfg.NER.URL))
	}

	var aireOpts []openaire.Option
	if cfg.OpenAIRE.URL != "" {
		aireOpts = append(aireOpts, openaire.WithBaseURL(cfg.OpenAIRE.URL))
	}

	var alexOpts []openalex.Option
	if cfg.OpenAlex.URL != "" {
		alexOpts = append(alexOpts, openalex.WithBaseURL(cfg.OpenAlex.URL))
	}
	if cfg.OpenAlex.Mailto != "" {
		alexOpts = append(alexOpts, openalex.WithMailto(cfg.OpenAlex.Mailto))
	}

	engine := reconcile.NewEngine(nil,
		[]source.PaperSource{
			openaire.NewClient(aireOpts...),
			openalex.NewClient(alexOpts...),
		}...)

	var embedOpts []embedding.OllamaOption
	if cfg.Embedding.URL != "" {
		embedOpts = append(embedOpts, embedding.WithBaseURL(cfg.Embedding.URL))
	}
	if cfg.Embedding.Model != "" {
		embedOpts = append(embedOpts, embedding.WithModel(cfg.Embedding.Model))
	}
	var linkOpts []similarity.Option
	if cfg.Similarity.Threshold != 0 {
		linkOpts = append(linkOpts, similarity.WithThreshold(float32(cfg.Similarity.Threshold)))
	}
	linker := similarity.NewLinker(embedding.NewOllamaProvider(embedOpts...), linkOpts...)

	return New(extractor, engine,
		WithOrgExtractor(ner.NewClient(nerOpts...)),
		WithLinker(linker),
		WithLogf(logf),
	)
}
