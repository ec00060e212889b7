// Package storage persists raw wound images. The core only needs a narrow
// contract: save bytes under a key, get back the opaque handle recorded on
// the observation.
package storage

import "context"

// ImageStore saves an uploaded image under key and returns the stored
// location (local path or object-storage key). Writing an existing key
// overwrites it: last write wins.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}
