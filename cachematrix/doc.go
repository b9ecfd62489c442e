// Package cachematrix memoizes matrix inversion.
//
// A Cell holds one matrix and at most one cached inverse for it. Replacing
// the matrix with Set always clears the cached inverse. A Resolver returns
// the cached inverse when present (logging a cache-hit notification) and
// otherwise computes it through an Inverter, stores it in the cell and
// returns it.
//
//	cell := cachematrix.New(m)
//	inv, err := cachematrix.ResolveInverse(cell) // computed
//	inv, err = cachematrix.ResolveInverse(cell)  // cached
//	cell.Set(other)                              // invalidates
//
// The cache is only as good as the discipline of its callers: mutating the
// held matrix in place (for example through Dense.Set on the value returned
// by Get) bypasses invalidation and leaves a stale inverse in the cell.
//
// Cells and Resolvers are not safe for concurrent use.
package cachematrix
