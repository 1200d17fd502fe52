// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrMissingClip       = errors.New("no decoded clip for track source")
	ErrClipMismatch      = errors.New("clip not conformed to renderer format")
)
