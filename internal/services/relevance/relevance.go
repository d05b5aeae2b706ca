// Package relevance is the keyphrase-to-text layer on top of the
// scoring engine: it indexes a corpus (one annotated suffix index per
// text), computes keyphrase relevance tables, and derives keyphrase
// co-occurrence graphs from them.
package relevance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"east/ast"
	"east/internal/domain/models"
	"east/internal/services/tokenize"
	"east/internal/services/workers"
	"east/internal/utils/metrics"
)

type Engine struct {
	log        *slog.Logger
	algorithm  ast.Algorithm
	normalized bool
	chunkWords int
	stemming   bool
	numWorkers int

	// OnProgress, when set, receives one event per indexed text.
	OnProgress func(models.BuildEvent)

	mu      sync.RWMutex
	names   []string
	indices map[string]ast.Index

	metrics metrics.Metrics
}

func New(log *slog.Logger, algorithm ast.Algorithm, normalized bool, chunkWords int, stemming bool, numWorkers int) *Engine {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Engine{
		log:        log,
		algorithm:  algorithm,
		normalized: normalized,
		chunkWords: chunkWords,
		stemming:   stemming,
		numWorkers: numWorkers,
		indices:    make(map[string]ast.Index),
	}
}

// Fragments turns raw text content into the fragment collection an
// index is built from, with the engine's chunking settings.
func (e *Engine) Fragments(content string) []string {
	return tokenize.Fragments(content, e.chunkWords, e.stemming)
}

// SetTexts replaces the indexed corpus. Indices are built on the
// worker pool; texts that carry pre-built fragments reuse them, the
// rest are tokenized first.
func (e *Engine) SetTexts(ctx context.Context, texts []models.Text) error {
	const op = "relevance.SetTexts"

	start := time.Now()
	total := len(texts)

	pool := workers.New(e.log, e.numWorkers)

	indices := make(map[string]ast.Index, total)
	names := make([]string, 0, total)
	var mu sync.Mutex
	processed := 0

	go func() {
		for i := range texts {
			text := texts[i]
			pool.AddJob(workers.Job{
				Description: workers.JobDescriptor{ID: workers.JobID(text.Name), JobType: "index"},
				Args:        &text,
				ExecFn: func(ctx context.Context, args models.Text) (string, error) {
					buildStart := time.Now()
					fragments := args.Fragments
					if len(fragments) == 0 {
						fragments = e.Fragments(args.Content)
					}
					index, err := ast.BuildIndex(fragments, e.algorithm)
					if err != nil {
						e.metrics.RecordFailure(time.Since(buildStart))
						return "", err
					}
					e.metrics.RecordSuccess(time.Since(buildStart))

					mu.Lock()
					indices[args.Name] = index
					names = append(names, args.Name)
					processed++
					done := processed
					mu.Unlock()

					if e.OnProgress != nil {
						e.OnProgress(models.BuildEvent{
							Stage:     "indexing",
							Text:      args.Name,
							Processed: done,
							Total:     total,
							ElapsedMS: time.Since(start).Milliseconds(),
						})
					}
					return args.Name, nil
				},
			})
		}
		pool.Close()
	}()

	go pool.Run(ctx)

	var firstErr error
	for result := range pool.Results() {
		if result.Err != nil && firstErr == nil {
			firstErr = result.Err
		}
	}
	<-pool.Done

	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
	if firstErr != nil {
		return fmt.Errorf("%s: %w", op, firstErr)
	}

	sort.Strings(names)

	e.mu.Lock()
	e.names = names
	e.indices = indices
	e.mu.Unlock()

	e.metrics.PrintMetrics(e.log)
	e.log.Info("Corpus indexed", "texts", total, "algorithm", string(e.algorithm), "took", time.Since(start))
	return nil
}

// Names lists the indexed texts in sorted order.
func (e *Engine) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.names...)
}

// Relevance scores one keyphrase against one text.
func (e *Engine) Relevance(name, keyphrase string, expander ast.SynonymExpander) (float64, error) {
	const op = "relevance.Relevance"

	e.mu.RLock()
	index, ok := e.indices[name]
	e.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%s: no index for text %q", op, name)
	}
	return index.Score(keyphrase, e.normalized, expander), nil
}

// Scores ranks all indexed texts for one keyphrase, best first.
func (e *Engine) Scores(keyphrase string, expander ast.SynonymExpander) []models.ScoreResult {
	e.mu.RLock()
	defer e.mu.RUnlock()

	results := make([]models.ScoreResult, 0, len(e.names))
	for _, name := range e.names {
		results = append(results, models.ScoreResult{
			Name:  name,
			Score: e.indices[name].Score(keyphrase, e.normalized, expander),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// Table computes the full keyphrase-to-text relevance table.
func (e *Engine) Table(ctx context.Context, keyphrases []string, expander ast.SynonymExpander) (Table, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	table := make(Table, len(keyphrases))
	for _, keyphrase := range keyphrases {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		row := make(map[string]float64, len(e.names))
		for _, name := range e.names {
			row[name] = e.indices[name].Score(keyphrase, e.normalized, expander)
		}
		table[keyphrase] = row
	}
	return table, nil
}

// Graph derives the keyphrase co-occurrence graph from a relevance
// table: keyphrase A points at keyphrase B when B occurs in at least
// significance of the texts A occurs in, where occurrence means the
// matching score reaches threshold.
func (e *Engine) Graph(ctx context.Context, keyphrases []string, significance, threshold float64, expander ast.SynonymExpander) (Graph, error) {
	table, err := e.Table(ctx, keyphrases, expander)
	if err != nil {
		return nil, err
	}

	occurrences := make(map[string]map[string]bool, len(keyphrases))
	for keyphrase, row := range table {
		texts := make(map[string]bool)
		for name, score := range row {
			if score >= threshold {
				texts[name] = true
			}
		}
		occurrences[keyphrase] = texts
	}

	graph := make(Graph, len(keyphrases))
	for _, keyphrase := range keyphrases {
		graph[keyphrase] = []string{}
	}
	for _, a := range keyphrases {
		for _, b := range keyphrases {
			if a == b || len(occurrences[a]) == 0 {
				continue
			}
			both := 0
			for name := range occurrences[a] {
				if occurrences[b][name] {
					both++
				}
			}
			if float64(both)/float64(len(occurrences[a])) >= significance {
				graph[a] = append(graph[a], b)
			}
		}
		sort.Strings(graph[a])
	}
	return graph, nil
}
