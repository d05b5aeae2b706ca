package leveldb

import (
	"context"
	"east/internal/domain/models"
	"east/internal/lib/logger/sl"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Storage persists the corpus texts together with their pre-built
// fragment collections, so a restart can rebuild indices without
// re-tokenizing. The indices themselves are never stored; they live
// in memory only.
type Storage struct {
	log       *slog.Logger
	db        *leveldb.DB
	writeChan chan *models.Text
	wg        sync.WaitGroup
}

var ErrNotFound = errors.New("text not found")

const (
	bufferSize   = 1000
	flushTimeout = 2 * time.Second

	textPrefix  = "text:"
	tablePrefix = "table:"
)

func NewStorage(log *slog.Logger, path string) (*Storage, error) {
	const op = "storage.leveldb.New"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage := &Storage{
		log:       log,
		db:        db,
		writeChan: make(chan *models.Text, bufferSize*2),
	}

	storage.wg.Add(1)
	go storage.writeWorker()

	return storage, nil
}

func (s *Storage) writeWorker() {
	defer s.wg.Done()

	batch := new(leveldb.Batch)
	ticker := time.NewTicker(flushTimeout)
	defer ticker.Stop()

	flush := func() {
		if batch.Len() == 0 {
			return
		}
		if err := s.db.Write(batch, nil); err != nil {
			s.log.Error("Failed to write batch", "error", sl.Err(err))
		}
		batch = new(leveldb.Batch)
	}

	for {
		select {
		case text, ok := <-s.writeChan:
			if !ok {
				s.log.Debug("Write channel closed, flushing batch", "len", batch.Len())
				flush()
				return
			}

			data, _ := json.Marshal(text)
			batch.Put([]byte(textPrefix+text.Name), data)

			if batch.Len() >= bufferSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

func (s *Storage) GetDatabaseStats(ctx context.Context) (string, error) {
	stats, err := s.db.GetProperty("leveldb.stats")
	if err != nil {
		return "", err
	}

	return stats, nil
}

// SaveText writes a text and its fragments synchronously.
func (s *Storage) SaveText(ctx context.Context, text *models.Text) (string, error) {
	const op = "storage.leveldb.SaveText"

	data, err := json.Marshal(text)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Put([]byte(textPrefix+text.Name), data, nil); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return text.Name, nil
}

// BatchText queues a text for the batching write worker.
func (s *Storage) BatchText(ctx context.Context, text *models.Text) (string, error) {
	select {
	case s.writeChan <- text:
		return text.Name, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *Storage) GetText(ctx context.Context, name string) (*models.Text, error) {
	data, err := s.db.Get([]byte(textPrefix+name), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var text models.Text
	if err := json.Unmarshal(data, &text); err != nil {
		return nil, err
	}

	return &text, nil
}

// GetFragments returns the stored fragment collection of a text.
func (s *Storage) GetFragments(ctx context.Context, name string) ([]string, error) {
	text, err := s.GetText(ctx, name)
	if err != nil {
		return nil, err
	}
	return text.Fragments, nil
}

// ListTexts returns the names of all stored texts.
func (s *Storage) ListTexts(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.db.NewIterator(util.BytesPrefix([]byte(textPrefix)), nil)
	for iter.Next() {
		names = append(names, strings.TrimPrefix(string(iter.Key()), textPrefix))
	}
	iter.Release()
	return names, iter.Error()
}

func (s *Storage) DeleteText(ctx context.Context, name string) error {
	return s.db.Delete([]byte(textPrefix+name), nil)
}

// SaveTable persists a serialized keyphrase relevance table under its
// own name; the format (JSON, EDN) is the caller's choice.
func (s *Storage) SaveTable(ctx context.Context, name string, data []byte) error {
	return s.db.Put([]byte(tablePrefix+name), data, nil)
}

func (s *Storage) GetTable(ctx context.Context, name string) ([]byte, error) {
	data, err := s.db.Get([]byte(tablePrefix+name), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) StopWorkers() {
	close(s.writeChan)
	s.wg.Wait()
}
