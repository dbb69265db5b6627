// SPDX-License-Identifier: MIT
// Package dataset produces deterministic synthetic trajectory corpora over
// triangulated grid complexes.
//
// Generation is seeded end to end: the same Config yields the same complex,
// the same trajectories and the same masks. A trajectory is a shortest-path
// route from a start in the left band through a midfield waypoint to a
// destination in the right band; the destination's vertical half follows the
// trajectory index (mod 3), which is what the regional-transfer evaluation
// splits on later.
//
// Flows are signed one-hot edge encodings of a trajectory prefix. The flow
// table can be persisted and reloaded; loading is a capability check that
// reports absence instead of failing, with recomputation as the designated
// fallback.
package dataset
