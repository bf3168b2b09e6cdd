// Package cache holds a small generic LRU cache.
//
// The validator uses it to share compiled regular expressions and expr
// programs between chains that declare the same pattern:
//
//	patterns := cache.NewLRU[string, *regexp.Regexp](256)
//	re, err := patterns.GetOrLoad(pattern, func() (*regexp.Regexp, error) {
//		return regexp.Compile(pattern)
//	})
package cache
