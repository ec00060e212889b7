// Package classifier provides the wound-image infection classifiers. Two
// implementations exist behind one interface: a remote trained model and a
// local redness heuristic used before the model is ready. The caller never
// needs to know which one is active.
package classifier

import "context"

// Classifier estimates the probability in [0, 1] that a wound image shows
// infection. Implementations must not fail for any well-formed image;
// undecodable bytes are the caller's validation problem.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (float64, error)
	// Name identifies the active implementation, for logging.
	Name() string
}
