package power

import (
	"errors"
	"math"

	"github.com/renoua/potato/internal/config"
)

// ErrInvalidFTP is returned when the functional threshold power is not a
// positive number, which would make the tanh scale degenerate.
var ErrInvalidFTP = errors.New("functional threshold power must be positive")

// Curve maps instantaneous power to a trigger ratio in [0,1] using a tanh
// saturation curve. Riding at exactly FTP watts produces a ratio of 0.75;
// the curve approaches but never reaches 1.0, so power spikes cannot slam
// the trigger to full deflection.
type Curve struct {
	scale     float64
	threshold float64
}

// NewCurve derives the tanh scale from the rider's functional threshold
// power. Power below threshold watts maps to a ratio of 0.
func NewCurve(ftp, threshold float64) (Curve, error) {
	if ftp <= 0 {
		return Curve{}, ErrInvalidFTP
	}
	return Curve{
		scale:     math.Atanh(config.CalibrationRatio) / ftp,
		threshold: threshold,
	}, nil
}

// Ratio converts watts to a trigger ratio in [0,1]. Negative power (sensor
// calibration drift) clamps to 0 rather than producing a negative ratio.
func (c Curve) Ratio(watts int) float64 {
	p := float64(watts)
	if p < c.threshold {
		return 0
	}
	r := math.Tanh(c.scale * p)
	if r < 0 {
		return 0
	}
	return r
}

// TriggerByte converts a ratio to the 0-255 analog trigger value expected
// by the virtual gamepad. Out-of-range ratios are clamped first.
func TriggerByte(ratio float64) uint8 {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return uint8(math.Round(ratio * 255))
}
