// Package mock provides test doubles for the ai interfaces. The mock
// embedder produces deterministic FNV-seeded vectors so retrieval tests are
// repeatable without an embedding service; the mock generator records the
// prompts it receives so tests can assert on grounding context.
package mock
