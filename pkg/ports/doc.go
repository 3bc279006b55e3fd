/*
Package ports defines the driven ports of the automata engine.

These interfaces decouple the catalog of named definitions from its backing storage,
so that the HTTP and MCP adapters and the command line tool work the same way against
memory, Redis or a directory of files.

# Key Interfaces

  - DefinitionSource: read-only access to named definitions (e.g. a Loam directory).
  - DefinitionStore: a writable catalog (memory, Redis).
  - Watchable: sources that can signal changes for hot reload.
  - Engine: the stateless core consumed by the HTTP and MCP adapters.
*/
package ports
