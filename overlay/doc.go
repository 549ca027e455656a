// Package overlay is a minimal visual tree laid over a rendered scene.
//
// An overlay is a tree of tagged [Element] values carrying string attributes
// and a [Style] rule that positions them on a [Surface]. A [Document] creates
// elements and delivers attribute changes to an [Observer] watching a subtree;
// delivery happens on [Document.Flush], so observers never see a tree in the
// middle of a batch of edits.
//
// The Surface draws a hover highlight for the element under the pointer while
// passthrough (Control) is held, and reports clicks through [Surface.OnPick].
//
// [Fprint] and [Capture] render a tree as text or as YAML-encodable data.
package overlay
