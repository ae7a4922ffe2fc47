/*
Package ports defines the driven ports (interfaces) of the toolkit.

The scaling and centroid pipelines are pure functions over a parsed document
and need no ports. The interfaces here cover the optional infrastructure the
facade can be wired with.

# Key Interfaces

  - CentroidCache: Stores centroid results keyed by the SHA-256 of the input (memory or Redis).

RunCentroidCacheContract is exported so every adapter runs the same suite.
*/
package ports
