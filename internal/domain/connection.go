package domain

import (
	"time"
)

// StreamConnection records an established thought-stream link between
// two mesh nodes. The core only carries the data model; connections are
// created and interpreted by the mesh layer.
type StreamConnection struct {
	ConnectionID  string
	SourceNode    string
	TargetNode    string
	Edge          Edge
	EstablishedAt time.Time
	IsActive      bool
}
