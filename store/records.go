package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/tradeplan/journal"
	"github.com/rustyeddy/tradeplan/pkg/id"
	"github.com/rustyeddy/tradeplan/projection"
)

// Snapshot is the saved projection: the params, the result they produced
// and when. Only the latest snapshot is kept.
type Snapshot struct {
	Params projection.Params `json:"params"`
	Result projection.Result `json:"result"`
	At     time.Time         `json:"at"`
}

// DecodeSnapshot parses a stored projection record. It fails rather than
// return a snapshot the simulator could not have produced.
func DecodeSnapshot(raw []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode projection: %w", err)
	}
	if err := snap.Params.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("decode projection: %w", err)
	}
	if len(snap.Result.Weeks) == 0 || snap.Result.TotalWeeks != len(snap.Result.Weeks) {
		return Snapshot{}, errors.New("decode projection: result has no consistent weeks")
	}
	return snap, nil
}

// DecodeLogs parses a trade log record from a backup, validating every
// entry. Unlike Logs it fails on the first bad entry.
func DecodeLogs(raw []byte) ([]journal.Entry, error) {
	var entries []journal.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("decode logs: %w", err)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("decode logs: duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
	return entries, nil
}

// SaveProjection replaces the saved snapshot.
func (s *SQLite) SaveProjection(ctx context.Context, p projection.Params, r projection.Result) (Snapshot, error) {
	snap := Snapshot{Params: p, Result: r, At: s.now().UTC()}
	b, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode projection: %w", err)
	}
	if err := s.Put(ctx, KeyProjection, string(b)); err != nil {
		return Snapshot{}, err
	}
	s.log.Debug("projection saved", "weeks", r.TotalWeeks, "final_capital", r.FinalCapital)
	return snap, nil
}

// LoadProjection returns ErrNotFound when nothing is saved. A record that
// no longer decodes is treated the same way.
func (s *SQLite) LoadProjection(ctx context.Context) (Snapshot, error) {
	raw, ok, err := s.Get(ctx, KeyProjection)
	if err != nil {
		return Snapshot{}, err
	}
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	snap, err := DecodeSnapshot([]byte(raw))
	if err != nil {
		s.log.Warn("ignoring corrupt projection record", "err", err)
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// Logs returns the trade log. A record that is not a JSON array reads as
// empty. Inside a parsed array, entries that fail to decode or validate,
// and repeats of an id already seen, are skipped one by one.
func (s *SQLite) Logs(ctx context.Context) ([]journal.Entry, error) {
	raw, ok, err := s.Get(ctx, KeyLogs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("ignoring corrupt trade log record", "err", err)
		return nil, nil
	}

	entries := make([]journal.Entry, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		var e journal.Entry
		if err := json.Unmarshal(item, &e); err != nil {
			s.log.Warn("skipping undecodable log entry", "index", i, "err", err)
			continue
		}
		if err := e.Validate(); err != nil {
			s.log.Warn("skipping invalid log entry", "id", e.ID, "err", err)
			continue
		}
		if seen[e.ID] {
			s.log.Warn("skipping duplicate log entry", "id", e.ID)
			continue
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}
	return entries, nil
}

// SaveLogs replaces the whole trade log.
func (s *SQLite) SaveLogs(ctx context.Context, entries []journal.Entry) error {
	b, err := encodeLogs(entries)
	if err != nil {
		return err
	}
	return s.Put(ctx, KeyLogs, string(b))
}

func encodeLogs(entries []journal.Entry) ([]byte, error) {
	if entries == nil {
		entries = []journal.Entry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode logs: %w", err)
	}
	return b, nil
}

// AddEntry assigns a new id to e, validates it and appends it to the log.
func (s *SQLite) AddEntry(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	e.ID = id.New()
	if err := e.Validate(); err != nil {
		return journal.Entry{}, err
	}

	entries, err := s.Logs(ctx)
	if err != nil {
		return journal.Entry{}, err
	}
	if err := s.SaveLogs(ctx, append(entries, e)); err != nil {
		return journal.Entry{}, err
	}
	s.log.Debug("log entry added", "id", e.ID, "outcome", e.Outcome, "amount", e.Amount)
	return e, nil
}

// DeleteEntry removes the entry with the given id.
func (s *SQLite) DeleteEntry(ctx context.Context, entryID string) error {
	entries, err := s.Logs(ctx)
	if err != nil {
		return err
	}

	kept := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	if err := s.SaveLogs(ctx, kept); err != nil {
		return err
	}
	s.log.Debug("log entry deleted", "id", entryID)
	return nil
}
