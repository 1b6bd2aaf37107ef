// Package digestfile reads and writes sidecar digest files. A sidecar sits
// next to the file it describes, named after it with a ".sha256" suffix, and
// holds one sha256sum-compatible line, so a normalized digest can be stored
// alongside the file and verified later.
package digestfile
