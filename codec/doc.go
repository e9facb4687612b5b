// Package codec maps Go values onto the wire format through compiled,
// per-type handlers.
//
// The first time a type is marshaled, the registry inspects it with
// reflection and compiles an encode/decode closure pair for it. The pair is
// cached in a concurrent map, so every later operation on that type runs the
// closures directly with no further reflection over the type's shape.
//
// Resolution walks a fixed ladder:
//
//  1. Exact wire value types (Vector2, Vector3, Quaternion, Color,
//     time.Time) get their dedicated layouts.
//  2. Types implementing Marshaler and Unmarshaler run their own methods.
//  3. Scalar kinds (bool, integers, floats, string) use the primitive
//     layouts, so named types like `type EntityID uint32` work unchanged.
//  4. Slices, arrays, maps, and pointers compose the handlers of their
//     element types behind a count prefix.
//  5. Any other struct falls back to a structural handler built from its
//     exported fields in declaration order.
//
// Types that fit none of the tiers, types with reference cycles, and types
// implementing only half of the Marshaler/Unmarshaler pair are rejected. The
// rejection is cached too, so repeated attempts fail fast.
//
// A process-wide Default registry backs the package-level Marshal and
// Unmarshal helpers; independent registries can be created with NewRegistry
// when isolation matters.
package codec
