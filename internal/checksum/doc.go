// Package checksum computes line-ending independent SHA-256 checksums of text.
//
// # Normalization Strategy
//
// The input is read line by line. A line ends at "\n", "\r\n" or a lone "\r",
// so files written with Unix, Windows or classic Mac conventions split into
// the same lines. The lines are then re-joined with a configurable EOL:
//  1. The first line is emitted as-is
//  2. Every following line is preceded by the EOL
//  3. Unless disabled, one EOL is emitted after the last line, so a missing
//     final newline in the source does not change the checksum
//
// Optionally every whitespace rune is removed from each line before joining.
//
// # Example Usage
//
//	calculator := checksum.New(normhash.DefaultOptions())
//	result, err := calculator.Calculate(file, normalizedCopy)
//
// Both the digest and the optional writer receive exactly the same bytes, so
// the plain SHA-256 of the normalized copy equals the returned digest.
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
