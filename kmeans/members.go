package kmeans

import "github.com/RoaringBitmap/roaring/v2"

// Members returns, for every cluster, the set of point indices labelled with
// it. Bitmaps are freshly built on each call.
func (r *Result) Members() []*roaring.Bitmap {
	sets := make([]*roaring.Bitmap, len(r.Sizes))
	for j := range sets {
		sets[j] = roaring.New()
	}
	for i, l := range r.Labels {
		sets[l].Add(uint32(i))
	}
	return sets
}
