// Package core routes curriculum questions to a relational lookup or a
// semantic search and produces the final answer text.
package core

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/catalog"
	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/core/assemble"
	"github.com/agenthands/curriculum/internal/core/classify"
	"github.com/agenthands/curriculum/internal/core/extraction"
	"github.com/agenthands/curriculum/internal/core/model"
	"github.com/agenthands/curriculum/internal/core/resolve"
	"github.com/agenthands/curriculum/internal/core/retrieve"
	"github.com/agenthands/curriculum/internal/llm"
	"github.com/agenthands/curriculum/internal/vectorstore"
)

// Path records which retrieval strategy produced an answer.
type Path string

const (
	PathRelational Path = "relational"
	PathSemantic   Path = "semantic"
	// PathNone is a terminal answer produced without retrieval.
	PathNone Path = "none"
)

type Options struct {
	Collection   string
	TopK         int
	OverFetch    int
	MatchLimit   int
	MaxTokens    int
	SystemPrompt string
	Descriptions config.DescriptionBudgets

	// FallbackOnNotFound decides, per relational classification, whether an
	// unresolvable course degrades to semantic search or ends the query.
	FallbackOnNotFound map[model.Classification]bool
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Defaults())
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Collection:   cfg.Vector.Collection,
		TopK:         cfg.Router.TopK,
		OverFetch:    cfg.Router.OverFetch,
		MatchLimit:   cfg.Catalog.MatchLimit,
		MaxTokens:    cfg.LLM.MaxTokens,
		SystemPrompt: cfg.Prompts.System,
		Descriptions: cfg.Router.Descriptions,
		FallbackOnNotFound: map[model.Classification]bool{
			model.Prerequisite: cfg.Router.PrerequisiteFallback,
			model.Dependent:    cfg.Router.DependentFallback,
		},
	}
}

type Answer struct {
	ID             string                  `json:"id"`
	Query          string                  `json:"query"`
	Text           string                  `json:"answer"`
	Classification model.Classification    `json:"classification"`
	Path           Path                    `json:"path"`
	Course         *model.Course           `json:"course,omitempty"`
	Results        []model.RetrievalResult `json:"results"`
	FellBack       bool                    `json:"fell_back"`
	Failure        apperrors.Kind          `json:"failure,omitempty"`
}

// Router holds no per-query state; Ask is safe for concurrent use as long
// as the catalog, index and LLM clients are.
type Router struct {
	Resolver  *resolve.Resolver
	Retriever *retrieve.Engine
	Generator llm.Generator

	opts Options
	log  zerolog.Logger
}

func NewRouter(cat catalog.Catalog, idx vectorstore.Index, emb llm.Embedder, gen llm.Generator, opts Options, log zerolog.Logger) *Router {
	return &Router{
		Resolver:  resolve.NewResolver(cat, opts.MatchLimit),
		Retriever: retrieve.NewEngine(idx, emb, opts.Collection, opts.OverFetch, log),
		Generator: gen,
		opts:      opts,
		log:       log,
	}
}

// Ask answers one question. Only an unavailable store or embedder produces
// an error; not-found, empty retrieval and generator failures are reported
// through Answer.Failure with a readable Text.
func (r *Router) Ask(ctx context.Context, query string) (*Answer, error) {
	ans := &Answer{
		ID:             uuid.NewString(),
		Query:          query,
		Classification: classify.Classify(query),
	}
	log := r.log.With().
		Str("query_id", ans.ID).
		Stringer("classification", ans.Classification).
		Logger()
	log.Info().Str("query", query).Msg("Query classified")

	if ans.Classification != model.Semantic {
		done, err := r.relational(ctx, ans, log)
		if err != nil {
			log.Error().Err(err).Msg("Relational lookup failed")
			return nil, err
		}
		if done {
			return ans, nil
		}
		ans.FellBack = true
	}

	if err := r.semantic(ctx, ans, log); err != nil {
		log.Error().Err(err).Msg("Semantic retrieval failed")
		return nil, err
	}
	return ans, nil
}

// relational reports done=false when the query should continue on the
// semantic path.
func (r *Router) relational(ctx context.Context, ans *Answer, log zerolog.Logger) (bool, error) {
	identifier := extraction.ExtractCourseIdentifier(ans.Query)
	log.Debug().Str("identifier", identifier).Msg("Extracted course identifier")

	course, err := r.Resolver.Resolve(ctx, identifier)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			return false, err
		}
		if r.opts.FallbackOnNotFound[ans.Classification] {
			log.Info().Str("identifier", identifier).Msg("Course not found, falling back to semantic search")
			return false, nil
		}
		log.Info().Str("identifier", identifier).Msg("Course not found")
		ans.Path = PathNone
		ans.Failure = apperrors.KindNotFound
		ans.Text = assemble.CourseNotFound
		ans.Results = []model.RetrievalResult{}
		return true, nil
	}
	ans.Course = &course

	var related []model.Course
	if ans.Classification == model.Prerequisite {
		related, err = r.Resolver.PrerequisitesOf(ctx, course.ID)
	} else {
		related, err = r.Resolver.DependentsOf(ctx, course.ID)
	}
	if err != nil {
		return false, err
	}

	ans.Path = PathRelational
	ans.Results = make([]model.RetrievalResult, 0, len(related))
	for _, c := range related {
		ans.Results = append(ans.Results, model.FromCourse(c))
	}

	if ans.Classification == model.Prerequisite {
		ans.Text = assemble.Prerequisites(course, ans.Results, r.opts.Descriptions.Prerequisite)
	} else {
		ans.Text = assemble.Dependents(course, ans.Results, r.opts.Descriptions.Dependent)
	}

	log.Info().Str("course_id", course.ID).Int("related", len(related)).Msg("Answered from catalog")
	return true, nil
}

func (r *Router) semantic(ctx context.Context, ans *Answer, log zerolog.Logger) error {
	results, err := r.Retriever.Retrieve(ctx, ans.Query, r.opts.TopK)
	if err != nil {
		return err
	}
	ans.Path = PathSemantic
	ans.Results = results

	if len(results) == 0 {
		log.Info().Msg("No relevant courses found")
		ans.Failure = apperrors.KindEmptyRetrieval
		ans.Text = assemble.NoResults
		return nil
	}

	prompt := assemble.UserPrompt(assemble.Context(results, r.opts.Descriptions.Semantic), ans.Query)
	text, err := r.Generator.Generate(ctx, r.opts.SystemPrompt, prompt, r.opts.MaxTokens)
	if err != nil {
		err = apperrors.GeneratorFailure("router.Generate", err)
		log.Error().Err(err).Msg("Generator failed")
		ans.Failure = apperrors.KindGeneratorFailure
		ans.Text = "Error generating answer: " + err.Error()
		return nil
	}

	ans.Text = strings.TrimSpace(text)
	log.Info().Int("results", len(results)).Msg("Answered from semantic search")
	return nil
}
