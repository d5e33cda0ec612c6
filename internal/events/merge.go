// internal/events/merge.go
package events

// Entity types.
const (
	EntityMerge     = "merge"
	EntitySlideshow = "slideshow"
)

// Event types.
const (
	EventMergeStarted     = "merge.started"
	EventFileMerged       = "merge.file_merged"
	EventMergeCompleted   = "merge.completed"
	EventMergeFailed      = "merge.failed"
	EventSlideshowStarted = "slideshow.started"
	EventSlideshowFailed  = "slideshow.failed"
)

// MergeStarted is emitted once the request has been validated.
type MergeStarted struct {
	BaseEvent
	Output  string   `json:"output"`
	Sources []string `json:"sources"`
}

// FileMerged is emitted after every slide of one source has been appended.
type FileMerged struct {
	BaseEvent
	Path   string `json:"path"`
	Index  int    `json:"index"` // 1-based
	Total  int    `json:"total"`
	Slides int    `json:"slides"`
}

// MergeCompleted is emitted after the destination has been saved.
type MergeCompleted struct {
	BaseEvent
	Output     string `json:"output"`
	Files      int    `json:"files"`
	Slides     int    `json:"slides"`
	DurationMS int64  `json:"duration_ms"`
}

// MergeFailed is emitted when a merge gives up.
type MergeFailed struct {
	BaseEvent
	Output string `json:"output"`
	Source string `json:"source,omitempty"` // offending file, if any
	Stage  string `json:"stage"`            // validate, connect, append, save, cancel
	Reason string `json:"reason"`
}

// SlideshowStarted is emitted when playback of a merged file begins.
type SlideshowStarted struct {
	BaseEvent
	Path string `json:"path"`
}

// SlideshowFailed is emitted when playback could not start.
type SlideshowFailed struct {
	BaseEvent
	Path   string `json:"path"`
	Reason string `json:"reason"`
}
