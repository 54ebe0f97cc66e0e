/*
Package ports defines the interfaces between the conversation engine and the outside world.

These interfaces decouple the core logic from how messages physically arrive, so the
same engine runs over fixtures, decoder logs, Redis lists or HTTP submissions.

# Key Interfaces

  - MessageSource: yields one normalized message per call, or domain.ErrEndOfData.
  - Engine: the per-message step contract consumed by the runner and adapters.
*/
package ports
