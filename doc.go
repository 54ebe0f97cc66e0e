/*
Package qso classifies the messages of a structured radio conversation into the
successive phases of a protocol, by default an FT8 "pounce" QSO.

# Concept

A protocol is a static phase graph plus an ordered match table. Each rule of the
table belongs to a phase and carries a pattern and a transition. When a message
arrives the engine scans the table in order: the first rule of the current phase
decides alone whether the message advances the conversation. Every rule of another
phase met on the way adds one to the failure counter, which an accepted message
resets. A counter above the threshold is reported as an advisory event; the
conversation continues regardless.

# Usage

	eng, err := qso.New()
	if err != nil {
		log.Fatal(err)
	}

	src := stream.New(os.Stdin)
	res, err := eng.Run(ctx, src, runner.WithStopOnTerminal(true))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Outcome, res.Phase)

Protocols other than the built-in one are loaded from YAML with WithProtocolFile or
built in code with the dsl package and passed through WithProtocol.
*/
package qso
