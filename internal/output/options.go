package output

// Options controls how results are rendered.
type Options struct {
	JSON    bool
	NoColor bool
	Verbose bool
}
