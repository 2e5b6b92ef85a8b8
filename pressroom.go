// Package pressroom post-processes CMS article HTML for publishing.
// It injects heading anchors, builds tables of contents, estimates
// reading time, checks in-page anchors, and publishes rendered articles.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, goquery/, sqlite/).
package pressroom
