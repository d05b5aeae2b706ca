package app

import (
	"east/ast"
	"east/internal/services/relevance"
	"east/internal/services/stream"
	"log/slog"
)

type App struct {
	Relevance  *relevance.Engine
	Stream     *stream.Publisher
	StorageApp *StorageApp
}

func New(
	log *slog.Logger,
	storagePath string,
	algorithm ast.Algorithm,
	normalized bool,
	chunkWords int,
	stemming bool,
	numWorkers int,
) *App {
	storageApp, err := NewStorageApp(log, storagePath)
	if err != nil {
		panic(err)
	}

	publisher := stream.New(log)

	engine := relevance.New(log, algorithm, normalized, chunkWords, stemming, numWorkers)
	engine.OnProgress = publisher.PublishBuild

	return &App{
		Relevance:  engine,
		Stream:     publisher,
		StorageApp: storageApp,
	}
}
