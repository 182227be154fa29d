/*
Package semtok turns EL tokens into LSP semantic tokens.

	  Document Text
	       |
	   tokenizer
	       |
	       v
	+--------------+     classify      +----------------+
	| EL tokens    | ----------------> | semantic Token |
	| (rune spans) |  name, literal,   | (line, column) |
	+--------------+  operator, ...    +----------------+
	                                          |
	                                       Encode
	                                          |
	                                          v
	                                  [dLine, dChar, len,
	                                   type, modifiers]...

Markup text, whitespace and punctuation are not reported. Tokens that span
lines are split so every semantic token sits on a single line. Columns and
lengths count runes, matching the position package.
*/
package semtok
