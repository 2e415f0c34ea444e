/*
Package store keeps short sayings (id, content, author) on disk.

Every record lives in its own file named "<id>.json" under the storage root:

	{
	  "id": 1,
	  "content": "Love the present.",
	  "author": "Unknown"
	}

The last allocated id is kept in "lastId.txt" as decimal text. It is written
before an id is used, so ids are never re-used, even after a record is
deleted. A crash between writing the counter and writing the record leaves
a gap in ids.

Open rebuilds the in-memory index by reading all record files. Files that
can't be parsed are logged and skipped. If the counter is lower than the
highest id on disk, it's raised.

ExportSnapshot writes all records, in ascending id order, into "data.json":

	s, err := store.Open(store.Options{StorageRoot: "db/wiseSaying"})
	if err != nil {
		return err
	}
	r, err := s.Create("Love the present.", "Unknown")
	...
	err = s.ExportSnapshot()

Mutations are recorded as events in the log package. Events are only
written after log.Init, either by the caller or via Options.Log.

All writes go through atomicfile so a failed write never leaves
a partially written file.
*/
package store
