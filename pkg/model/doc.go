// Package model defines the hook records held by the repository and the batch
// shapes accepted when loading them. A Hook keeps its identifying `name` and
// `type` as typed fields while every other documented attribute (description,
// args, since, tags) travels untouched in Extra, so hook files round-trip
// through JSON or YAML without a schema. Batches arrive either wrapped in a
// Container, which may carry a `docLinkTemplate`, or as a bare sequence that
// Classify wraps with the default schema reference.
package model
