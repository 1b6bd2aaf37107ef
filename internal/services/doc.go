// Package services wires the normalizing hasher to files, standard streams
// and sidecar digests. It resolves paths, owns the lifetime of every handle,
// and commits output only once hashing succeeded.
package services
