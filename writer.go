package reckon

// An ArtifactWriter persists a finished sequence of artifact lines under a
// name, returning the location where the artifact may be read. Writes are
// all-or-nothing: no partially-written artifact is ever observable at the
// returned location, and WriteLines returns only once the artifact is
// durable. Returning the location to a caller is therefore a synchronization
// barrier ordering all downstream reads after the write.
type ArtifactWriter interface {
	WriteLines(name string, lines []string) (string, error)
}
