/*
Package domain contains the automaton data model shared by every other package.

It defines the six supported machine kinds, their construction parameters and the
immutable Automaton aggregate together with its structural validation. This package is
kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Definition: The serializable construction parameters of a machine (names as strings).
  - Automaton: The validated, read-only machine. States are addressed by StateID.
  - Transition: A flat record interpreted according to the machine Kind.
  - GraphView: A read-only projection of an Automaton for exporters.
*/
package domain
