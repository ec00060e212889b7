package classifier

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/aegislabs/aegis-backend/internal/common"
)

// Heuristic scores red-channel dominance: the redder the wound area relative
// to green and blue, the higher the infection probability. A stand-in until
// the trained model is deployed, kept as the permanent fallback.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Name() string { return "heuristic-redness" }

// Classify decodes the image and maps mean r/(g+b) roughly into [0, 1].
// The 0.9/0.6 scaling matches the calibration of the original heuristic:
// a neutral gray image sits near zero, a strongly red one near one.
func (h *Heuristic) Classify(ctx context.Context, data []byte) (float64, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("%w: undecodable image: %v", common.ErrorValidation, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return 0, fmt.Errorf("%w: empty image", common.ErrorValidation)
	}

	var sum float64
	var n int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels; the ratio is scale-free.
			sum += float64(r) / (float64(g) + float64(b) + 1e-6)
			n++
		}
	}
	redness := sum / float64(n)

	return common.Clamp01((redness - 0.9) / 0.6), nil
}
