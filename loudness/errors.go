// SPDX-License-Identifier: EPL-2.0

package loudness

import "errors"

var ErrTargetMismatch = errors.New("buffer format does not match loudness target")
