package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/tradeplan/journal"
)

var ErrInvalidBackup = errors.New("store: invalid backup")

// Bundle is a full backup: both records as they are stored.
type Bundle struct {
	Projection *Snapshot
	Logs       []journal.Entry
	ExportedAt time.Time
}

// On the wire each record is embedded as a JSON string holding the stored
// document, the same shape the records have in the key-value table.
type wireBundle struct {
	Projection json.RawMessage `json:"projection"`
	Logs       json.RawMessage `json:"logs"`
	ExportedAt time.Time       `json:"exportedAt"`
}

func (b Bundle) MarshalJSON() ([]byte, error) {
	w := wireBundle{
		Projection: json.RawMessage("null"),
		ExportedAt: b.ExportedAt,
	}
	if b.Projection != nil {
		doc, err := json.Marshal(b.Projection)
		if err != nil {
			return nil, err
		}
		if w.Projection, err = json.Marshal(string(doc)); err != nil {
			return nil, err
		}
	}

	doc, err := encodeLogs(b.Logs)
	if err != nil {
		return nil, err
	}
	if w.Logs, err = json.Marshal(string(doc)); err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts records embedded as strings or as plain objects.
// Any record that fails to decode fails the whole bundle.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	var w wireBundle
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	proj, err := unwrap(w.Projection)
	if err != nil {
		return fmt.Errorf("%w: projection: %v", ErrInvalidBackup, err)
	}
	logs, err := unwrap(w.Logs)
	if err != nil {
		return fmt.Errorf("%w: logs: %v", ErrInvalidBackup, err)
	}
	if proj == nil && logs == nil {
		return fmt.Errorf("%w: no projection or logs record", ErrInvalidBackup)
	}

	out := Bundle{ExportedAt: w.ExportedAt}
	if proj != nil {
		snap, err := DecodeSnapshot(proj)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
		}
		out.Projection = &snap
	}
	if logs != nil {
		if out.Logs, err = DecodeLogs(logs); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
		}
	}

	*b = out
	return nil
}

// unwrap returns the record document, or nil for an absent record.
func unwrap(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] != '"' {
		return raw, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return []byte(s), nil
}

func DecodeBundle(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Bundle{}, fmt.Errorf("read backup: %w", err)
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		if errors.Is(err, ErrInvalidBackup) {
			return Bundle{}, err
		}
		return Bundle{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return b, nil
}

func EncodeBundle(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// Export bundles the current projection and trade log.
func (s *SQLite) Export(ctx context.Context) (Bundle, error) {
	b := Bundle{ExportedAt: s.now().UTC()}

	snap, err := s.LoadProjection(ctx)
	switch {
	case err == nil:
		b.Projection = &snap
	case !errors.Is(err, ErrNotFound):
		return Bundle{}, err
	}

	if b.Logs, err = s.Logs(ctx); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// Import replaces both records with the bundle in one transaction. A
// bundle without a projection clears the saved one. Nothing is merged.
func (s *SQLite) Import(ctx context.Context, b Bundle) (err error) {
	logs, err := encodeLogs(b.Logs)
	if err != nil {
		return err
	}
	var proj []byte
	if b.Projection != nil {
		if proj, err = json.Marshal(b.Projection); err != nil {
			return fmt.Errorf("encode projection: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := s.now()
	if proj != nil {
		err = put(ctx, tx, KeyProjection, string(proj), now)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, KeyProjection)
	}
	if err != nil {
		return err
	}
	if err = put(ctx, tx, KeyLogs, string(logs), now); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	s.log.Info("backup imported", "entries", len(b.Logs), "projection", b.Projection != nil)
	return nil
}
