package input

// AggregatorBuilderOption is a functional option for configuring an aggregator.
type AggregatorBuilderOption func(a *aggregator)

// WithOrbitButton sets the physical mouse button that drives orbiting.
//
// Parameters:
//   - button: the button code (see common.MouseButton*)
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithOrbitButton(button int) AggregatorBuilderOption {
	return func(a *aggregator) {
		a.orbitButton = button
	}
}

// WithPanButton sets the physical mouse button that drives panning.
//
// Parameters:
//   - button: the button code (see common.MouseButton*)
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithPanButton(button int) AggregatorBuilderOption {
	return func(a *aggregator) {
		a.panButton = button
	}
}
