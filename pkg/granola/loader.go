package granola

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	gerrors "github.com/The-Focus-AI/granola-skill/pkg/errors"
	"github.com/The-Focus-AI/granola-skill/pkg/logging"
)

// CacheFileName is the cache file Granola writes in its application support directory.
const CacheFileName = "cache-v3.json"

// DefaultCachePath returns the platform default location of the Granola cache.
func DefaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Granola", CacheFileName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Granola", CacheFileName), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "Granola", CacheFileName), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "Granola", CacheFileName), nil
		}
		return filepath.Join(home, ".config", "Granola", CacheFileName), nil
	}
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used while decoding and querying.
func WithLogger(l logging.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used by Recent.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Load reads and decodes the cache file at path.
// An empty path means DefaultCachePath.
func Load(path string, opts ...Option) (*Cache, error) {
	if path == "" {
		p, err := DefaultCachePath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s (is Granola installed and has it synced at least once?)", gerrors.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("reading cache file %s: %w", path, err)
	}

	c, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.path = path
	c.logger.Debug("cache loaded",
		logging.F("path", c.Path()),
		logging.F("bytes", len(data)),
		logging.F("documents", c.Len()),
		logging.F("transcripts", len(c.transcripts)),
	)
	return c, nil
}

// envelope is the outer layer of the cache file. Granola stores the real
// state as a JSON-encoded string inside the "cache" member.
type envelope struct {
	Cache json.RawMessage `json:"cache"`
}

// stateContainer is the decoded content of envelope.Cache.
type stateContainer struct {
	State   json.RawMessage `json:"state"`
	Version json.RawMessage `json:"version,omitempty"`
}

// stateFields holds the two collections read from the state.
type stateFields struct {
	Documents   json.RawMessage `json:"documents"`
	Transcripts json.RawMessage `json:"transcripts"`
}

// member is one key of a JSON object, in file order.
type member struct {
	Key   string
	Value json.RawMessage
}

// Parse decodes the content of a cache file into a Cache.
func Parse(data []byte, opts ...Option) (*Cache, error) {
	c := newCache(opts...)

	inner, nested, err := unwrapEnvelope(data)
	if err != nil {
		return nil, err
	}

	var container stateContainer
	if err := json.Unmarshal(inner, &container); err != nil {
		return nil, fmt.Errorf("%w: decoding cache state: %v", gerrors.ErrMalformedSource, err)
	}
	state := []byte(container.State)
	if isNull(state) {
		state = inner
	}

	var fields stateFields
	if err := json.Unmarshal(state, &fields); err != nil {
		c.logger.Warn("cache state is not an object, treating as empty", logging.Err(err))
	}

	c.loadDocuments(fields.Documents)
	c.loadTranscripts(fields.Transcripts)

	c.logger.Debug("cache decoded",
		logging.F("nested_string", nested),
		logging.F("version", string(container.Version)),
	)
	return c, nil
}

// unwrapEnvelope returns the state container. When envelope.Cache is a
// string its content is decoded as a second JSON document; when it is an
// object it is used as is; when it is absent the whole file is the container.
func unwrapEnvelope(data []byte) (inner []byte, nested bool, err error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false, fmt.Errorf("%w: decoding cache file: %v", gerrors.ErrMalformedSource, err)
	}

	raw := bytes.TrimSpace(env.Cache)
	switch {
	case isNull(raw):
		return data, false, nil
	case raw[0] == '"':
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, false, fmt.Errorf("%w: decoding cache string: %v", gerrors.ErrMalformedSource, err)
		}
		if !json.Valid([]byte(encoded)) {
			return nil, false, fmt.Errorf("%w: cache string is not valid JSON", gerrors.ErrMalformedSource)
		}
		return []byte(encoded), true, nil
	default:
		return raw, false, nil
	}
}

func (c *Cache) loadDocuments(raw json.RawMessage) {
	if isNull(raw) {
		return
	}
	members, err := decodeObject(raw)
	if err != nil {
		c.logger.Warn("documents is not an object, treating as empty", logging.Err(err))
		return
	}

	for _, m := range members {
		var doc Document
		if err := json.Unmarshal(m.Value, &doc); err != nil {
			c.logger.Warn("skipping undecodable document", logging.F("id", m.Key), logging.Err(err))
			continue
		}
		if doc.ID == "" {
			doc.ID = m.Key
		}
		c.add(doc.ID, doc)
	}
}

func (c *Cache) loadTranscripts(raw json.RawMessage) {
	if isNull(raw) {
		return
	}
	members, err := decodeObject(raw)
	if err != nil {
		c.logger.Warn("transcripts is not an object, treating as empty", logging.Err(err))
		return
	}

	for _, m := range members {
		var segments []TranscriptSegment
		if err := json.Unmarshal(m.Value, &segments); err != nil {
			c.logger.Warn("skipping undecodable transcript", logging.F("id", m.Key), logging.Err(err))
			continue
		}
		c.transcripts[m.Key] = segments
	}
}

// decodeObject splits a JSON object into its members, preserving key order.
// A repeated key keeps its first position and its last value.
func decodeObject(raw json.RawMessage) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var members []member
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if i, dup := seen[key]; dup {
			members[i].Value = value
			continue
		}
		seen[key] = len(members)
		members = append(members, member{Key: key, Value: value})
	}
	return members, nil
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
