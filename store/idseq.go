package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kjk/sayings/atomicfile"
	"github.com/kjk/sayings/log"
)

// idSequence is a durable monotonic counter stored as decimal text
// in its own file
type idSequence struct {
	path   string
	lastID int
}

// openIDSequence reads the counter file. A missing or unparseable
// file starts the counter at 0.
func openIDSequence(path string) (*idSequence, error) {
	seq := &idSequence{path: path}
	d, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return seq, nil
		}
		return nil, fmt.Errorf("failed to read id counter: %w", err)
	}
	s := strings.TrimSpace(string(d))
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		log.Logf("store: ignoring invalid id counter '%s' in '%s'\n", s, path)
		return seq, nil
	}
	seq.lastID = n
	return seq, nil
}

func (s *idSequence) persist(v int) error {
	d := []byte(strconv.Itoa(v))
	if err := atomicfile.WriteFile(s.path, d); err != nil {
		return fmt.Errorf("failed to write id counter: %w", err)
	}
	return nil
}

// next persists the incremented value before handing it out
// so an id is never given twice, even after a crash
func (s *idSequence) next() (int, error) {
	v := s.lastID + 1
	if err := s.persist(v); err != nil {
		return 0, err
	}
	s.lastID = v
	return v, nil
}

// raiseTo moves the counter up to v if it's lower
func (s *idSequence) raiseTo(v int) error {
	if v <= s.lastID {
		return nil
	}
	if err := s.persist(v); err != nil {
		return err
	}
	s.lastID = v
	return nil
}

func (s *idSequence) current() int {
	return s.lastID
}
