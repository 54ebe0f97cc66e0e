/*
Package runner implements the pull loop that drives a conversation engine.

Each iteration makes exactly one blocking call to the message source and feeds the
message through the engine before asking for the next one. The loop ends when the
source runs dry, or earlier when the caller opts into stopping on a terminal phase
or on the first failure-threshold event.

# Key Components

  - Runner: the loop itself, configured with functional options.
  - Handler: receives every step for presentation (TextHandler, JSONHandler).
  - Result: why the loop ended and what the conversation looked like.

# Usage

	r := runner.New(
		runner.WithStopOnTerminal(true),
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
	)

	res, err := r.Run(ctx, engine, source)
*/
package runner
