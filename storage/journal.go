//go:generate go run go.uber.org/mock/mockgen -source=journal.go -destination=../mocks/mock_journal.go -package=mocks
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"mediaflow/contract"
	"mediaflow/domain"
	"mediaflow/domain/event"
)

const journalPrefix = "journal:"

// JournalRecord is the durable trace of one settled upload. Only terminal
// outcomes land in the journal; intermediate states stay in memory.
type JournalRecord struct {
	Handle     domain.Handle       `json:"handle"`
	Name       string              `json:"name"`
	Size       int64               `json:"size"`
	Status     domain.UploadStatus `json:"status"`
	Message    string              `json:"message,omitempty"`
	FileID     string              `json:"file_id,omitempty"`
	FinishedAt time.Time           `json:"finished_at"`
}

type IJournalRepository interface {
	Append(record JournalRecord) error
	Recent(limit int) ([]JournalRecord, error)
}

// JournalRepository persists upload outcomes in badger. Keys embed the finish
// timestamp so a reverse scan yields newest-first without a secondary index.
type JournalRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewJournalRepository(db *badger.DB, log *slog.Logger) *JournalRepository {
	return &JournalRepository{db: db, log: log}
}

func (r *JournalRepository) Append(record JournalRecord) error {
	if record.FinishedAt.IsZero() {
		record.FinishedAt = time.Now()
	}
	key := fmt.Sprintf("%s%020d:%s", journalPrefix, record.FinishedAt.UnixNano(), record.Handle)

	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), payload)
	})
}

// Recent returns up to limit records, newest first.
func (r *JournalRepository) Recent(limit int) ([]JournalRecord, error) {
	var records []JournalRecord

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(journalPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration needs a seek key past the whole prefix range.
		seek := append([]byte(journalPrefix), 0xFF)
		for it.Seek(seek); it.Valid() && len(records) < limit; it.Next() {
			var record JournalRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				key := string(it.Item().Key())
				r.log.Warn("Skipping unreadable journal entry", "key", key, "error", err)
				continue
			}
			records = append(records, record)
		}
		return nil
	})
	return records, err
}

var _ contract.EventSink = (*JournalSink)(nil)

// JournalSink feeds the journal from the event pipeline. It only reacts to
// state changes that settle a file; everything else passes through silently.
type JournalSink struct {
	journal IJournalRepository
	log     *slog.Logger
}

func NewJournalSink(journal IJournalRepository, log *slog.Logger) *JournalSink {
	return &JournalSink{journal: journal, log: log}
}

func (s *JournalSink) Consume(e event.UploadEvent) {
	changed, ok := e.(event.StateChanged)
	if !ok {
		return
	}
	if !isSettled(changed.Status) {
		return
	}

	err := s.journal.Append(JournalRecord{
		Handle:     changed.Handle,
		Name:       changed.Name,
		Size:       changed.Size,
		Status:     changed.Status,
		Message:    strings.TrimSpace(changed.Message),
		FileID:     changed.FileID,
		FinishedAt: changed.At,
	})
	if err != nil {
		s.log.Warn("Journal append failed", "file", changed.Name, "error", err)
	}
}

func isSettled(status domain.UploadStatus) bool {
	switch status {
	case domain.StatusAwaitingAction, domain.StatusProcessed, domain.StatusError:
		return true
	default:
		return false
	}
}
