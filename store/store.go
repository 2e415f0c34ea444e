package store

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/kjk/sayings/atomicfile"
	"github.com/kjk/sayings/log"
	"github.com/kjk/sayings/u"
)

const (
	// DefaultStorageRoot is the conventional storage root, relative to working directory
	DefaultStorageRoot = "db/wiseSaying"

	recordExt      = ".json"
	lastIDFileName = "lastId.txt"
	exportFileName = "data.json"
)

// Options configures a Store
type Options struct {
	// StorageRoot is the directory for record, counter and export files
	// For current directory, use "."
	StorageRoot string
	// ExportCompression, if set, makes ExportSnapshot also write
	// a compressed copy of the export file. "br" or "zstd"
	ExportCompression string
	// Log, if set, is passed to log.Init in Open so that skipped files
	// and create / update / delete / export events go to daily log files.
	// If nil, the program embedding the store is responsible for log.Init.
	Log *log.Config
}

// Store keeps records in per-record files and serves reads
// from an in-memory index rebuilt in Open.
// Store is not safe for concurrent use.
type Store struct {
	dir  string
	opts Options
	seq  *idSequence
	// insertion order of records
	ids     []int
	records map[int]Record
}

// Open creates the storage directory if needed, loads all
// record files and repairs the id counter
func Open(opts Options) (*Store, error) {
	if opts.StorageRoot == "" {
		return nil, fmt.Errorf("storage root is not set. For current directory, use '.'")
	}
	switch opts.ExportCompression {
	case "", CompressionBrotli, CompressionZstd:
		// ok
	default:
		return nil, fmt.Errorf("unknown export compression '%s'", opts.ExportCompression)
	}
	if opts.Log != nil {
		log.Init(opts.Log)
	}
	dir, err := filepath.Abs(opts.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for storage root: %w", err)
	}
	if err = os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	s := &Store{
		dir:     dir,
		opts:    opts,
		records: map[int]Record{},
	}
	s.seq, err = openIDSequence(filepath.Join(dir, lastIDFileName))
	if err != nil {
		return nil, err
	}
	maxID, err := s.loadRecords()
	if err != nil {
		return nil, err
	}
	if maxID > s.seq.current() {
		log.Logf("store: raising id counter from %d to %d\n", s.seq.current(), maxID)
		if err = s.seq.raiseTo(maxID); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// idFromFileName returns id for "<id>.json", 0 if not a record file.
// Only the canonical name is accepted, "01.json" or "+1.json" are not.
func idFromFileName(name string) int {
	if !strings.HasSuffix(name, recordExt) || name == exportFileName {
		return 0
	}
	id, err := strconv.Atoi(u.TrimExt(name))
	if err != nil || id <= 0 || strconv.Itoa(id)+recordExt != name {
		return 0
	}
	return id
}

// loadRecords indexes every parseable record file in ascending
// id order and returns the largest id seen
func (s *Store) loadRecords() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list storage root: %w", err)
	}
	var ids []int
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if id := idFromFileName(e.Name()); id > 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	maxID := 0
	for _, id := range ids {
		path := s.recordPath(id)
		d, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("failed to read record file: %w", err)
		}
		r, err := ParseRecord(d)
		if err != nil {
			log.Logf("store: skipping malformed record file '%s': %v\n", path, err)
			continue
		}
		if r.ID != id {
			log.Logf("store: skipping record file '%s' with id %d\n", path, r.ID)
			continue
		}
		s.ids = append(s.ids, id)
		s.records[id] = r
		maxID = max(maxID, id)
	}
	return maxID, nil
}

func (s *Store) recordPath(id int) string {
	return filepath.Join(s.dir, strconv.Itoa(id)+recordExt)
}

func (s *Store) writeRecord(r Record) error {
	if err := atomicfile.WriteFile(s.recordPath(r.ID), FormatRecord(r)); err != nil {
		return fmt.Errorf("failed to write record %d: %w", r.ID, err)
	}
	return nil
}

// Dir returns absolute path of the storage root
func (s *Store) Dir() string {
	return s.dir
}

// LastID returns the most recently allocated id, 0 if none
func (s *Store) LastID() int {
	return s.seq.current()
}

// Len returns number of indexed records
func (s *Store) Len() int {
	return len(s.ids)
}

// Create allocates a new id and persists a record with trimmed
// content and author. Blank values are accepted.
func (s *Store) Create(content, author string) (Record, error) {
	id, err := s.seq.next()
	if err != nil {
		return Record{}, err
	}
	r := Record{
		ID:      id,
		Content: strings.TrimSpace(content),
		Author:  strings.TrimSpace(author),
	}
	if err = s.writeRecord(r); err != nil {
		return Record{}, err
	}
	s.ids = append(s.ids, id)
	s.records[id] = r
	log.Event("saying.create", "id", id)
	return r, nil
}

// FindByID returns the record with a given id
func (s *Store) FindByID(id int) (Record, bool) {
	r, ok := s.records[id]
	return r, ok
}

// FindAllDescending returns all records, newest (highest id) first
func (s *Store) FindAllDescending() []Record {
	res := make([]Record, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.records[id])
	}
	slices.SortFunc(res, func(a, b Record) int {
		return b.ID - a.ID
	})
	return res
}

// findAllAscending is the order of the export file
func (s *Store) findAllAscending() []Record {
	res := s.FindAllDescending()
	slices.Reverse(res)
	return res
}

// Update replaces content and author of an existing record.
// Returns false if there's no record with this id.
func (s *Store) Update(id int, content, author string) (Record, bool, error) {
	r, ok := s.records[id]
	if !ok {
		return Record{}, false, nil
	}
	r.Content = strings.TrimSpace(content)
	r.Author = strings.TrimSpace(author)
	if err := s.writeRecord(r); err != nil {
		return Record{}, true, err
	}
	s.records[id] = r
	log.Event("saying.update", "id", id)
	return r, true, nil
}

// Delete removes a record and its file. The id is never re-used.
// Returns false if there's no record with this id. If the file can't
// be removed, returns an error and the record is kept.
func (s *Store) Delete(id int) (bool, error) {
	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	// the record stays indexed if its file can't be removed
	err := os.Remove(s.recordPath(id))
	if err != nil && !os.IsNotExist(err) {
		return true, fmt.Errorf("failed to delete record %d: %w", id, err)
	}
	delete(s.records, id)
	s.ids = slices.DeleteFunc(s.ids, func(v int) bool {
		return v == id
	})
	log.Event("saying.delete", "id", id)
	return true, nil
}
