// Package pipeline orchestrates one audit as a sequence of steps:
// fetch, extract, score, assemble, insight. Each audit runs on its
// own state with no sharing between concurrent requests; only the
// fetch step may abort the sequence.
package pipeline
