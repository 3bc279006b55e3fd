/*
Package regex parses the small regular expression dialect accepted by the engine.

Supported syntax, from highest to lowest precedence:

  - grouping with ( and )
  - postfix * (zero or more) and + (one or more), stackable
  - implicit concatenation
  - alternation with |

ε, λ or the escape \e denote the empty string. A backslash before any other rune
makes it a literal, so \* matches an asterisk and "\ " a space; ε and λ cannot be
escaped into literals. Unescaped whitespace is ignored.
*/
package regex
