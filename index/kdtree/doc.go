// Package kdtree provides the accelerated exact kNN index: a balanced k-d
// tree built by median partition with a branch-and-bound search. Its output
// is bit-identical to package bruteforce for every input, including exact
// distance ties.
package kdtree
