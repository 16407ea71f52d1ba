package correlogram

// Transform is the per-cell nonlinearity applied to each correlation
// coefficient before it is stored in the output matrix.
type Transform func(r float64) float64

// RectifiedQuartic clamps negative correlation to zero and raises the rest
// to the fourth power. This suppresses weak and negative correlation and
// sharply emphasizes strong positive correlation; it is the default used
// for periodicity analysis.
func RectifiedQuartic(r float64) float64 {
	if r <= 0 {
		return 0
	}
	r2 := r * r
	return r2 * r2
}

// RectifiedSquare clamps negative correlation to zero and squares the rest,
// a milder emphasis than RectifiedQuartic.
func RectifiedSquare(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return r * r
}

// Identity stores the raw correlation coefficient.
func Identity(r float64) float64 {
	return r
}

// Config configures correlogram computation
type Config struct {
	// WindowLength is the length, in samples, of the sliding correlation
	// window.
	WindowLength int `json:"window_length"`

	// NumWorkers controls parallelism over delay rows. Values below 2 run
	// the computation sequentially.
	NumWorkers int `json:"num_workers,omitempty"`

	// Transform is the per-cell nonlinearity. Nil selects RectifiedQuartic.
	Transform Transform `json:"-"`
}

// DefaultConfig returns sensible defaults for audio periodicity analysis
func DefaultConfig() Config {
	return Config{
		WindowLength: 1024,
		NumWorkers:   1,
		Transform:    RectifiedQuartic,
	}
}
