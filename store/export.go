package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kjk/sayings/atomicfile"
	"github.com/kjk/sayings/log"
	"github.com/kjk/sayings/u"
)

const (
	CompressionBrotli = "br"
	CompressionZstd   = "zstd"
)

// ExportPath returns path of the consolidated export file
func (s *Store) ExportPath() string {
	return filepath.Join(s.dir, exportFileName)
}

// CompressedExportPath returns path of the compressed copy of the export,
// "" if compression is not configured
func (s *Store) CompressedExportPath() string {
	if s.opts.ExportCompression == "" {
		return ""
	}
	return s.ExportPath() + "." + s.opts.ExportCompression
}

// ExportSnapshot writes all records, in ascending id order, to the export
// file, replacing the previous one. The export is never read back.
func (s *Store) ExportSnapshot() error {
	timeStart := time.Now()
	records := s.findAllAscending()
	d := FormatExport(records)
	path := s.ExportPath()
	if err := atomicfile.WriteFile(path, d); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	if s.opts.ExportCompression != "" {
		var cd []byte
		var err error
		switch s.opts.ExportCompression {
		case CompressionBrotli:
			cd, err = u.BrCompressDataBest(d)
		case CompressionZstd:
			cd, err = u.ZstdCompressData(d)
		}
		if err == nil {
			err = atomicfile.WriteFile(s.CompressedExportPath(), cd)
		}
		if err != nil {
			return fmt.Errorf("failed to write compressed export: %w", err)
		}
	}
	log.EventWithDuration("saying.export", time.Since(timeStart), "count", len(records))
	return nil
}
