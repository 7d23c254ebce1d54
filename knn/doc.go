// Package knn binds durable point storage to in-memory exact kNN indexes.
// A Searcher lazily builds one index per dataset from stored points, caches
// it for reuse across queries, and coordinates concurrent builders so a
// dataset is only ever loaded once at a time.
package knn
