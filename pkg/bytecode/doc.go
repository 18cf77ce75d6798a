// Package bytecode provides the Rowan compilation pipeline back end: a
// compact linear instruction encoding, a single-pass compiler that lowers
// the parsed AST into an instruction stream plus a constant pool, and a
// stack-based virtual machine that executes the result.
//
// The bytecode format is designed for:
//   - Compact representation (1-3 bytes per instruction)
//   - Fast decoding (fixed-width opcodes, big-endian fixed-width operands)
//   - Easy serialization (a binary "RNBC" artifact format plus a CBOR wire
//     codec; compiled chunks can be cached in SQLite via the cache package)
//
// # Architecture Overview
//
//   - Opcodes: the instruction set and its metadata table. The byte stream
//     carries no length prefixes; the table keyed by opcode is the only
//     decode authority.
//
//   - Chunk: a compiled unit holding the instruction stream and the
//     constant pool. Mutable during compilation (jump backpatching rewrites
//     operand bytes in place), read-only once handed to the VM.
//
//   - Compiler: a single recursive pass over the AST. Forward jump targets
//     are unknown at emission time and resolved by emitting a placeholder
//     operand and patching it once the target offset is known.
//
//   - VM: a fetch-decode-execute loop over an operand stack. The externally
//     observable result of a run is LastPopped, the value that sat on top
//     of the stack immediately before the final DISCARD.
//
// # Value semantics
//
// Runtime values form a closed set: Integer, Boolean, Null. True, False and
// NullValue are process-wide canonical singletons shared read-only across
// VM instances; equality and truthiness over them are identity checks,
// never structural ones.
package bytecode
