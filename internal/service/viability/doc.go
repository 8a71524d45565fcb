// Package viability projects the economics of buying, fattening and reselling cattle.
//
// Purchase weight is measured in gross arrobas of 30 kg of live weight. Sale-side yield is
// measured in carcass arrobas of 15 kg. Every function here is pure: it reads its arguments and
// allocates fresh results, so it is safe to call from any number of goroutines.
package viability
