//go:build !linux

package stream

// No portable read-ahead hints outside of linux.
var ReadOptimizations []Optimization
