// Package chintai scrapes rental listing pages, normalizes them into flat
// property records, and serves a filterable browsing UI with LLM-assisted
// station suggestions.
//
// This package contains domain types, pure transforms and service
// interfaces. Implementations live in subdirectories named after their
// primary dependency (e.g., sqlite/, goquery/, openai/).
package chintai
