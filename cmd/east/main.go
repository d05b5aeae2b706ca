package main

import (
	"context"
	"east/ast"
	"east/config"
	"east/internal/app"
	"east/internal/lib/logger/sl"
	"east/internal/services/cui"
	"east/internal/services/loader"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var keyphrase string
	var useUI bool
	flag.StringVar(&keyphrase, "q", "", "keyphrase to score against the corpus")
	flag.BoolVar(&useUI, "ui", false, "start the terminal dashboard")

	cfg := config.MustLoad()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := setupLogger(cfg.Env)

	log.Info("east", "env", cfg.Env, "algorithm", cfg.AST.Algorithm)

	application := app.New(
		log,
		cfg.StoragePath,
		ast.Algorithm(cfg.AST.Algorithm),
		cfg.AST.Normalized,
		cfg.AST.ChunkWords,
		cfg.AST.Stemming,
		cfg.AST.Workers,
	)

	log.Info("Database initialised")

	go func() {
		if err := application.Stream.Run(ctx, cfg.HTTPAddr); err != nil {
			log.Error("Event stream stopped", "error", sl.Err(err))
		}
	}()

	start := time.Now()
	dumpLoader := loader.NewLoader(log, cfg.Loader.FilePath)
	docs, err := dumpLoader.LoadDocuments()
	if err != nil {
		log.Error("Failed to load documents", "error", sl.Err(err))
		os.Exit(1)
	}
	if cfg.Loader.MaxDocs > 0 && len(docs) > cfg.Loader.MaxDocs {
		docs = docs[:cfg.Loader.MaxDocs]
	}
	log.Info("Documents loaded", "count", len(docs), "took", time.Since(start))

	texts := dumpLoader.Texts(docs)

	// Tokenize once, persist the fragment collections, index from them.
	storage := application.StorageApp.Storage()
	for i := range texts {
		texts[i].Fragments = application.Relevance.Fragments(texts[i].Content)
		if _, err := storage.BatchText(ctx, &texts[i]); err != nil {
			log.Error("Failed to store text", "name", texts[i].Name, "error", sl.Err(err))
		}
	}

	start = time.Now()
	if err := application.Relevance.SetTexts(ctx, texts); err != nil {
		log.Error("Failed to index corpus", "error", sl.Err(err))
		os.Exit(1)
	}
	log.Info("Corpus ready", "texts", len(texts), "took", time.Since(start))

	if keyphrase != "" {
		scoreKeyphrase(application, keyphrase)
	}

	if useUI {
		dashboard := cui.New(ctx, log, application.Relevance, 10)
		if err := dashboard.Start(); err != nil {
			log.Error("Dashboard failed", "error", sl.Err(err))
		}
	} else {
		// Graceful shutdown
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

		// Waiting for SIGINT (pkill -2) or SIGTERM
		<-stop
	}

	cancel()
	application.Stream.Stop()
	if err := application.StorageApp.Stop(); err != nil {
		log.Error("Failed to close database", "error", sl.Err(err))
	}

	log.Info("Gracefully stopped")
}

func scoreKeyphrase(application *app.App, keyphrase string) {
	results := application.Relevance.Scores(keyphrase, nil)
	fmt.Printf("Matching scores for %q:\n", keyphrase)
	for _, result := range results {
		fmt.Printf("%-60s %.6f\n", result.Name, result.Score)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
