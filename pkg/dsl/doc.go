/*
Package dsl provides a fluent Go builder for protocol definitions.

It declares phases, transitions and match rules in one place and compiles them into
an immutable phase graph and match table. Rule order follows call order, which is
also evaluation order at runtime.

Example usage:

	b := dsl.New()

	b.Phase("listen").Initial().
		When(`CQ `, "hear_a_cq", "heard_cq")

	b.Phase("heard_cq").
		When(`[A-Z0-9]{4,} +[A-Z0-9]{4,}`, "reply", "replied")

	b.Phase("replied")

	g, t, err := b.Build()
*/
package dsl
