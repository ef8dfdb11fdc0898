// Package chat implements retrieval-augmented question answering over
// indexed meetings, scoped either to a single meeting or to everything a
// user owns.
package chat
