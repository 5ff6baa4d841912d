// Package frame models the host's per-frame callback mechanism.
//
// A [Scheduler] issues one-shot frame requests identified by a [Handle];
// a scene keeps its loop alive by requesting the next frame from inside the
// current one, and stops it by cancelling the live handle. [Queue] is the
// only implementation: its host decides when frames happen by calling
// [Queue.Tick], and timestamps come from an injected [Clock].
//
//	clock := frame.NewMockClock(time.Unix(0, 0))
//	q := frame.NewQueue(clock)
//	orbital := scene.NewOrbital(cfg, q, surface)
//	orbital.Start(params)
//	clock.Advance(time.Second / 60)
//	q.Tick()
package frame
