// Package cv turns CV markdown into a structured Document and routes its
// body sections into main and sidebar flows.
//
// # Source convention
//
// The extractor understands a small line-oriented dialect:
//
//	# Jane Smith                      name (first level-1 heading)
//	**Senior Product Designer**      title (first bold span, first 5 lines)
//	![circular](https://.../me.jpg)  headshot (first image anywhere)
//
//	## Contact Information           contact block
//	- 📧 jane@example.com
//
//	## Experience                    body sections
//	### Lead Designer
//
// # Token precedence
//
// Stripping runs as a fixed pipeline: headshot, title, contact, name.
// Each stage sees the output of the previous one, so a line consumed by an
// earlier stage is invisible to the later ones. Within a stage the first
// match wins.
//
// Every operation in this package is total: absent structure degrades to
// placeholders or empty values, never to an error.
package cv
