// Package gesture is the card-stack interaction engine.
//
// The engine consumes pointer input for the top card of the stack and produces
// a Pose for every layer on each frame: the top card follows the pointer and
// rotates with it, while each card beneath eases toward the slot in front of it
// in proportion to how far the drag has travelled. Releasing the drag resolves
// it to one of three outcomes.
//
//	Idle ──down──▶ Dragging ──up/cancel──▶ cancel        ──▶ Idle
//	                                   ├─▶ advance       ──▶ Resolving ──Settle──▶ Idle
//	                                   └─▶ triggered-skip ──▶ Resolving ──Settle──▶ Idle
//
// The net horizontal displacement drives translation, rotation and the
// advance/cancel decision. A separate counter tracks direction reversals of the
// raw pointer position. Enough reversals resolve as a triggered skip. The skip
// check runs first, so it overrides a small displacement.
//
// Input reaches the engine only through a Binding returned by Attach. Each
// render cycle detaches the previous binding before attaching a new one.
// Events sent to a detached binding are rejected with ErrDetached, so handlers
// left over from a discarded stack cannot touch the new one.
//
// The engine is synchronous. Timing comes from the event timestamps and the
// now passed to Frame. The caller owns the settle timer and calls
// Binding.Settle when it fires.
package gesture
