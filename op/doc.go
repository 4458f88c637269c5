// Package op provides stream operators built purely on the public murmur
// core: transforms, filters, combinators and instrumentation. Every
// operator is a free generic function returning a cold stream, so pipelines
// compose by nesting calls.
package op
