// Package openai implements the ai interfaces against OpenAI-compatible
// APIs (OpenAI, Ollama, LocalAI, vLLM) via langchaingo. One provider serves
// both the embedding endpoint and the chat completion endpoint; the two may
// point at different hosts and models.
package openai
