/*
To write to files in a robust way we should:

- handle error returned by `Close()`

- handle error returned by `Write()`

- remove partially written file if `Write()` or `Close()` returned an error

Package atomicfile writes to a temporary file in the destination directory
and renames it over the destination in Close(). Readers see either the old
or the new content, never a partial write.

For the common case of writing a whole file, use WriteFile:

	err := atomicfile.WriteFile("lastId.txt", []byte("12"))

For streaming writes:

	w, err := atomicfile.New(filePath)
	if err != nil {
		return err
	}
	// calling Close() twice is a no-op
	defer w.RemoveIfNotClosed()

	_, err = w.Write(data)
	if err != nil {
		return err
	}
	return w.Close()
*/
package atomicfile
