package generation

import "context"

// TextGenerator wraps a remote text-generation model behind a single
// operation. Implementations make exactly one outbound call per
// invocation with fixed decoding parameters and retain no local state.
type TextGenerator interface {
	// GenerateText sends the rendered prompt to the model and returns
	// the raw response text. The context bounds the network round trip.
	//
	// Errors are drawn from this package's taxonomy: ErrAuthConfiguration
	// when the calling credential is absent or rejected (no retry will
	// help), ErrUpstream when the remote call fails or times out, and
	// ErrContentBlocked when the model's safety filters suppress output.
	GenerateText(ctx context.Context, renderedPrompt string) (string, error)
}
