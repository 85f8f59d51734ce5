// Package pointio reads input points from CSV or GeoJSON (optionally gzip,
// zstd or lz4 compressed) and writes the same records back with the cluster
// columns CLUSTER_ID, CLUSTER_SIZE and CLUSTER_COLOR appended.
//
// CLUSTER_ID is 1-based. CLUSTER_SIZE is the size of the record's cluster.
// CLUSTER_COLOR is a hex color from Palette, stable for a given k.
package pointio
