package collection

import (
	"bytes"
	"encoding/json"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// ErrUnreadable marks stored bytes that cannot be decoded into the current
// record schema: malformed JSON, a missing records field, a failed migration
// or a version newer than this build understands.
var ErrUnreadable = errors.New("collection unreadable")

// migrationAPI keeps numbers as json.Number so integers such as millisecond
// timestamps survive the generic round trip unchanged.
var migrationAPI = sonic.Config{UseNumber: true}.Froze()

type storedEnvelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

type writeEnvelope[T any] struct {
	Version int `json:"version"`
	Records []T `json:"records"`
}

func encode[T any](version int, records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(writeEnvelope[T]{Version: version, Records: records}); err != nil {
		return nil, errors.Wrap(err, "encode collection")
	}

	return append([]byte(nil), bytes.TrimRight(buf.B, "\n")...), nil
}

// decode returns the records and the version they were stored with. Legacy
// bare arrays are version 0. With legacyObject set, a bare object that is not
// an envelope is read as a version 0 sequence holding that one record. With
// scalarField set, bare scalars in a version 0 array become one-field records.
func decode[T any](raw []byte, current int, migrations []Migration, legacyObject bool, scalarField string) ([]T, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, 0, errors.Wrap(ErrUnreadable, "empty payload")
	}

	var (
		version    int
		recordsRaw []byte
	)
	switch trimmed[0] {
	case '[':
		recordsRaw = trimmed
	case '{':
		if legacyObject && !isEnvelope(trimmed) {
			recordsRaw = make([]byte, 0, len(trimmed)+2)
			recordsRaw = append(recordsRaw, '[')
			recordsRaw = append(recordsRaw, trimmed...)
			recordsRaw = append(recordsRaw, ']')
			break
		}
		var env storedEnvelope
		if err := sonic.Unmarshal(trimmed, &env); err != nil {
			return nil, 0, errors.Wrapf(ErrUnreadable, "parse envelope: %v", err)
		}
		if len(env.Records) == 0 {
			return nil, env.Version, errors.Wrap(ErrUnreadable, "envelope has no records")
		}
		version = env.Version
		recordsRaw = env.Records
	default:
		return nil, 0, errors.Wrapf(ErrUnreadable, "unexpected leading byte %q", trimmed[0])
	}

	if version < 0 || version > current {
		return nil, version, errors.Wrapf(ErrUnreadable, "unsupported version %d (current %d)", version, current)
	}

	if version < current {
		migrated, err := migrate(recordsRaw, version, current, migrations, scalarField)
		if err != nil {
			return nil, version, err
		}
		recordsRaw = migrated
	}

	var out []T
	if err := sonic.Unmarshal(recordsRaw, &out); err != nil {
		return nil, version, errors.Wrapf(ErrUnreadable, "parse records: %v", err)
	}

	return out, version, nil
}

func isEnvelope(raw []byte) bool {
	var probe map[string]json.RawMessage
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return true
	}
	_, hasVersion := probe["version"]
	_, hasRecords := probe["records"]
	return hasVersion && hasRecords
}

func migrate(recordsRaw []byte, from, to int, migrations []Migration, scalarField string) ([]byte, error) {
	var generic []map[string]any
	if from == 0 && scalarField != "" {
		rows, err := wrapScalars(recordsRaw, scalarField)
		if err != nil {
			return nil, err
		}
		generic = rows
	} else if err := migrationAPI.Unmarshal(recordsRaw, &generic); err != nil {
		return nil, errors.Wrapf(ErrUnreadable, "parse records for migration: %v", err)
	}

	for v := from; v < to; v++ {
		if v >= len(migrations) || migrations[v] == nil {
			return nil, errors.Wrapf(ErrUnreadable, "no migration from version %d", v)
		}
		next, err := migrations[v](generic)
		if err != nil {
			return nil, errors.Wrapf(ErrUnreadable, "migrate v%d->v%d: %v", v, v+1, err)
		}
		generic = next
	}

	out, err := migrationAPI.Marshal(generic)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadable, "re-encode migrated records: %v", err)
	}
	return out, nil
}

func wrapScalars(recordsRaw []byte, field string) ([]map[string]any, error) {
	var items []any
	if err := migrationAPI.Unmarshal(recordsRaw, &items); err != nil {
		return nil, errors.Wrapf(ErrUnreadable, "parse records for migration: %v", err)
	}

	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case map[string]any:
			out = append(out, v)
		case nil:
			continue
		case []any:
			return nil, errors.Wrapf(ErrUnreadable, "record %d is an array", i)
		default:
			out = append(out, map[string]any{field: v})
		}
	}
	return out, nil
}
