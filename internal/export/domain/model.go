package domain

// Artifact is a rendered export ready to stream back to the client.
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
}
