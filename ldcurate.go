// Package ldcurate builds curated datasets of Schema.org JSON-LD markup.
// It discovers pages likely to embed structured data, scrapes them,
// validates every JSON-LD block against Schema.org and Google rules, and
// scores its quality so only rich, conformant markup is accepted.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, rod/) or after the
// role they play (schemaorg/, validate/, score/).
package ldcurate
