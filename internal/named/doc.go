// Package named rewrites call sites that use `name = value` arguments and
// omitted optional arguments into plain positional calls.
//
// The host analyses a unit once with diagnostics captured (Plugin.OnPhaseStart).
// On Plugin.OnPhaseEnd every call and `new` expression is visited inner-first
// and handed to the Resolver:
//
//  1. the callee comes from the host binding; a binding to the enclosing class
//     means ordinary overload resolution failed and the Rematcher picks a
//     candidate by scoring parameter positions;
//  2. arguments are split into a positional queue and a bucket of named values
//     (an assignment counts as named only if the host could not resolve its
//     target identifier);
//  3. parameters are filled left to right from the bucket, then the queue,
//     then Defaults;
//  4. anything left over, or a required parameter left empty, abandons the
//     call: named values are unwrapped and the host reports the real error.
//
// Unknown-identifier diagnostics raised against consumed names are marked
// resolved and dropped when the capture window closes; everything else is
// replayed in order. Declarations whose calls changed are then reanalysed.
//
// The package talks to the host only through Host and the shared tables in
// Unit; it does not depend on any particular host implementation.
package named
