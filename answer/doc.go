// Package answer turns a question and its retrieved context into a reply.
//
// A Generator consults its answer cache first, then calls the configured
// text generator under a bounded RetryPolicy. Empty replies count as
// failures. When every attempt fails the caller receives
// ErrServiceUnavailable; the individual failures are only logged.
//
// # Usage
//
//	gen, err := answer.NewGenerator(provider,
//	    answer.WithRetryPolicy(answer.DefaultRetryPolicy()),
//	)
//	reply, err := gen.Generate(ctx, "Do you ship to Canada?", rank.Retrieve(corpus, q))
package answer
