// Package dynamo provides the core value types of the particle sandbox.
//
// Everything the simulation mutates lives in a handful of plain structs:
//
//   - [Vec2]: 2D floating-point vector
//   - [Body]: circular point mass with position, velocity and acceleration
//   - [Link]: spring (force based) length constraint between two bodies
//   - [StaticLink]: rigid length constraint resolved by position correction
//   - [Tunables]: runtime-adjustable simulation parameters
//
// Bodies are owned by the world's body slice and addressed by index. Links,
// collision pairs and the broad-phase grid hold those indices as weak
// references; bodies never point back at links.
//
// # Thread Safety
//
// None of these types are synchronized. A world and its tunables are owned by
// a single goroutine; use independent worlds for parallel runs.
package dynamo
