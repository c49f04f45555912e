package annotation

import (
	"sync"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

// buildBlobs converts regions to blobs on a bounded pool of workers. Each
// worker owns the blob it builds; results keep the order of regions. Ids are
// left at zero for the caller to assign.
func (c *Collection) buildBlobs(regions []*mask.Mask) []*blob.Blob {
	out := make([]*blob.Blob, len(regions))
	if len(regions) == 0 {
		return out
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := min(c.opts.Workers, len(regions))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = blob.FromRegion(regions[i], 0)
			}
		}()
	}
	for i := range regions {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
