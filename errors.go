// SPDX-License-Identifier: EPL-2.0

package admix

import "errors"

var (
	ErrNilFetcher        = errors.New("fetcher must not be nil")
	ErrNoTracks          = errors.New("mixdown needs at least one track")
	ErrUnsupportedLayout = errors.New("output layout must be stereo")
)
