// Package grid implements the packing grid: a bounded rows x cols occupancy
// matrix plus the set of placed item instances. Every exported mutation
// either succeeds or leaves the grid and its instance map exactly as they
// were; callers never observe a half-applied placement.
//
// A Grid is owned by a single session and is not safe for concurrent use.
package grid
