// Package normhash defines the public contract of the normalizing hasher:
// the Options value, the Logger interface, sentinel errors and exit codes.
//
// A normalized hash is a SHA-256 digest of a text file computed after every
// line terminator (LF, CRLF or a lone CR) has been replaced by a configurable
// separator, so the same text saved with different line-ending conventions
// yields the same digest.
//
//	opts := normhash.DefaultOptions().WithEOL("\r\n")
//	result, err := services.NewHasher(filesystem.NewOSFileSystem(), logger).
//	    HashFile(opts, "input.txt", "normalized.txt")
package normhash
