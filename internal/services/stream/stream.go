// Package stream publishes index-build progress as Server-Sent Events.
// The scoring core never reports progress itself; the application
// layer wraps construction and pushes BuildEvents through this
// publisher for any subscribed dashboard or CLI.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"east/internal/domain/models"
	"east/internal/lib/logger/sl"

	"github.com/r3labs/sse/v2"
	backoff "gopkg.in/cenkalti/backoff.v1"
)

const buildsStream = "builds"

type Publisher struct {
	log    *slog.Logger
	server *sse.Server
}

func New(log *slog.Logger) *Publisher {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream(buildsStream)

	return &Publisher{
		log:    log,
		server: server,
	}
}

// PublishBuild pushes one progress event to every subscriber.
func (p *Publisher) PublishBuild(event models.BuildEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to marshal build event", "error", sl.Err(err))
		return
	}
	p.server.Publish(buildsStream, &sse.Event{Data: data})
}

// Run serves the event stream on addr until ctx is cancelled. Binding
// is retried with exponential backoff so a lingering socket from a
// previous run does not kill the process.
func (p *Publisher) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", p.server.ServeHTTP)

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	operation := func() error {
		if ctx.Err() != nil {
			return nil
		}
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) || ctx.Err() != nil {
			return nil
		}
		p.log.Error("Event stream listener failed, retrying", "addr", addr, "error", sl.Err(err))
		return err
	}

	return backoff.Retry(operation, backoff.NewExponentialBackOff())
}

func (p *Publisher) Stop() {
	p.server.Close()
}
