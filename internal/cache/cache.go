package cache

import "errors"

// ErrCacheMiss is returned when the key is absent; callers fall through to
// the repository.
var ErrCacheMiss = errors.New("cache miss")
