// SPDX-License-Identifier: EPL-2.0

package timeline

import "errors"

var (
	ErrEmptyTrackID     = errors.New("track id must not be empty")
	ErrDuplicateTrackID = errors.New("duplicate track id")
	ErrUnknownDuration  = errors.New("no measured duration for track source")
)
