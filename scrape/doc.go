// Package scrape collects recipe material from the web: recipe pages parsed
// into raw source data, reference pages mined for taxonomy word lists, and
// style corpora assembled from search results or a local directory. All
// fetching goes through a hardened HTTP client that refuses private
// addresses and oversized bodies.
package scrape
