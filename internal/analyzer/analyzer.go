// Package analyzer drives one analysis run: normalize the input, call the
// language service, aggregate its responses and persist the results, either
// as one blob document or incrementally across a gathered store.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vermi/gnlp-analyze/internal/aggregate"
	apperrors "github.com/vermi/gnlp-analyze/internal/errors"
	"github.com/vermi/gnlp-analyze/internal/logging"
	"github.com/vermi/gnlp-analyze/internal/models"
	"github.com/vermi/gnlp-analyze/internal/normalize"
	"github.com/vermi/gnlp-analyze/internal/store"
)

// LanguageService is the remote analysis capability the analyzer depends on
type LanguageService interface {
	AnalyzeSyntax(ctx context.Context, text string) (*models.SyntaxResponse, error)
	AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResponse, error)
}

// Analyzer runs blob and batch analyses against one language service
type Analyzer struct {
	lang LanguageService
	sink *Sink
	log  *slog.Logger

	blobNorm  normalize.Strategy
	batchNorm normalize.Strategy
}

// New creates an analyzer with the default normalization strategies: plain
// lowercasing for blobs, markup stripping for gathered documents
func New(lang LanguageService, sink *Sink) *Analyzer {
	return &Analyzer{
		lang:      lang,
		sink:      sink,
		log:       logging.WithComponent("analyzer"),
		blobNorm:  normalize.Plain{},
		batchNorm: normalize.Markdown{},
	}
}

// analyzeText runs the syntax and sentiment calls concurrently. Either both
// aggregated results come back or an error does; nothing partial is merged.
func (a *Analyzer) analyzeText(ctx context.Context, text string) (*models.SyntaxResult, *models.SentimentResult, error) {
	var (
		syntaxResp    *models.SyntaxResponse
		sentimentResp *models.SentimentResponse
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := a.lang.AnalyzeSyntax(ctx, text)
		syntaxResp = resp
		return err
	})
	g.Go(func() error {
		resp, err := a.lang.AnalyzeSentiment(ctx, text)
		sentimentResp = resp
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return aggregate.Syntax(syntaxResp), aggregate.Sentiment(sentimentResp), nil
}

// AnalyzeBlob analyzes one ad-hoc text blob. Shell-escaped quotes are
// unescaped before anything else, so the preserved original carries real
// quotes. An interrupt still flushes the partially assembled result.
func (a *Analyzer) AnalyzeBlob(ctx context.Context, raw string) error {
	text := strings.ReplaceAll(raw, `\"`, `"`)
	result := &models.BlobResult{Original: text}

	syntax, sentiment, err := a.analyzeText(ctx, a.blobNorm.Normalize(text))
	if err != nil {
		if interrupted(ctx, err) {
			a.log.Warn("analysis interrupted, flushing partial result")
			return a.sink.WriteBlob(result)
		}
		return err
	}

	result.Syntax = syntax
	result.Sentiment = sentiment
	return a.sink.WriteBlob(result)
}

// AnalyzeStore analyzes every post and comment in a gathered store, merging
// syntax and sentiment into each record as soon as its pair of calls
// completes. Records whose text is empty are counted and skipped. On
// interrupt the loop stops between documents and returns nil; everything
// analyzed so far is already on disk.
func (a *Analyzer) AnalyzeStore(ctx context.Context, st *store.Store) error {
	if !st.ContainsField("subreddit") {
		return apperrors.NewSchemaError(st.Path(), "no gather metadata with a subreddit field")
	}

	posts := st.Table("posts")
	comments := st.Table("comments")
	a.log.Info("analyzing store",
		"path", st.Path(),
		"posts", posts.Len(),
		"comments", comments.Len())

	bar := progressbar.Default(int64(posts.Len()+comments.Len()), "Analyzing corpus")

	for _, tbl := range []*store.Table{posts, comments} {
		if err := a.analyzeTable(ctx, tbl, bar); err != nil {
			if interrupted(ctx, err) {
				a.log.Warn("run interrupted, completed documents are saved", "table", tbl.Name())
				return nil
			}
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeTable(ctx context.Context, tbl *store.Table, bar *progressbar.ProgressBar) error {
	for _, doc := range tbl.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		text, _ := doc.String("text")
		if text == "" {
			bar.Add(1)
			continue
		}

		syntax, sentiment, err := a.analyzeText(ctx, a.batchNorm.Normalize(text))
		if err != nil {
			return err
		}

		if err := tbl.Update(doc.ID, map[string]any{
			"syntax":    syntax,
			"sentiment": sentiment,
		}); err != nil {
			return err
		}
		bar.Add(1)
	}
	return nil
}

// interrupted distinguishes a cooperative stop from a real failure
func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
