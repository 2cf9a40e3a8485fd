package grid

import "ariadne/internal/fingerprint"

// Cell identifies one node of a paving's subdivision tree by the pair
// (primary_cell_height, subdivision_path), per spec.md 4.8. Path[i] is
// false for the lower half, true for the upper half of the axis
// selected at depth i (axis = i mod dim).
type Cell struct {
	PrimaryHeight int
	Path          []bool
}

// Fingerprint returns a content digest identifying the cell, grounded
// on the same SHAKE-256 leaf-hashing construction the teacher's Merkle
// tree uses for its leaves.
func (c Cell) Fingerprint() fingerprint.Digest {
	return fingerprint.Cell(c.PrimaryHeight, c.Path)
}

// Depth returns the subdivision depth (root is depth 0).
func (c Cell) Depth() int { return len(c.Path) }
