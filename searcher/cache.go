package searcher

import "sync"

// resultCache memoizes oracle scores for one search run, keyed by the
// scene's canonical rendering. It is dropped with the tree when the run
// completes.
type resultCache struct {
	sync.Mutex
	scores map[string]float64
}

func newResultCache() *resultCache {
	return &resultCache{scores: make(map[string]float64)}
}

func (c *resultCache) get(key string) (float64, bool) {
	c.Lock()
	defer c.Unlock()

	score, ok := c.scores[key]
	return score, ok
}

// put stores a score, overwriting any previous entry for the key.
func (c *resultCache) put(key string, score float64) {
	c.Lock()
	defer c.Unlock()

	c.scores[key] = score
}
