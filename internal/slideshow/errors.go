package slideshow

import "errors"

// ErrLaunch indicates playback could not be started. It never affects the
// outcome of the merge that produced the file.
var ErrLaunch = errors.New("slideshow launch failed")
