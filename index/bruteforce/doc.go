// Package bruteforce provides an exact kNN index that scans all points and
// ranks them by squared Euclidean distance with a stable left-to-right tie
// order. It doubles as the correctness oracle for the k-d tree index.
package bruteforce
