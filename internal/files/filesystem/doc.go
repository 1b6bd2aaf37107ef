// Package filesystem provides the file access layer used by the hasher.
//
// The Provider interface opens inputs as streams and creates outputs that
// are staged until committed, enabling testability through an in-memory
// implementation while keeping the OS implementation all-or-nothing.
//
// Key types:
//   - Provider: Opens inputs and creates outputs
//   - OutputFile: Staged destination with Commit and Abort
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation; outputs are written to a hidden
//     sibling temp file and renamed over the destination on Commit
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
