// Package constraints applies length constraints between bodies and builds
// composite shapes out of them.
//
// Two constraint kinds exist:
//
//   - [dynamo.Link] is a spring-damper. [ApplySpring] adds a force to both
//     bodies which the integrator consumes on its next pass.
//   - [dynamo.StaticLink] is rigid. [ApplyStaticLink] moves both bodies
//     directly, one axis at a time, by half the length error.
//
// Each constraint is applied exactly once per frame. Chains of static links
// therefore converge over several frames rather than within one.
package constraints
