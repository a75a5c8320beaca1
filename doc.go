// Package keyline is the Composition Root for the keyline animation
// engine.
//
// It connects the core animation domain (Domain Layer) with the host
// editor's collaborators (clip storage, renderer, playhead) using the
// Hexagonal Architecture pattern.
//
// Philosophy:
//
// Keyline is the keyframe property animation engine of a timeline media
// editor. It attaches time-varying values (position, size, rotation,
// opacity, volume) to timeline clips and produces the data an external
// renderer interpolates. The engine owns keyframe storage, the tri-state
// interaction model, duration rescaling, renderer synchronization and
// snapshot-based undo/redo. It does not decode media, interpolate
// curves, or persist projects.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from the host editor via ports.
//   - **Tri-State Model**: none / on-keyframe / between-keyframes, always derived, never stored.
//   - **Transactional Mutation**: Every edit is a command with a deep pre-mutation snapshot.
//   - **Renderer Bridge**: Strictly ordered outbound sync, baseline-only inbound absorption.
//   - **Reactive**: Glob-filtered animation event streams for UI and tooling.
//   - **Extensible**: In-memory adapters out of the box; hosts supply real collaborators via core ports.
//
// Usage:
//
//	// Initialize the engine with functional options
//	anim, err := keyline.New(
//		keyline.WithClipProvider(clips),
//		keyline.WithRenderer(renderer),
//		keyline.WithFrameRate(30),
//	)
//
//	// Toggle a keyframe at the playhead
//	state, err := anim.Toggle(ctx, "clip-1", 100)
package keyline
