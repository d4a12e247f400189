// Package placeholder expands {name} tokens in author-supplied certificate
// text. Each value is escaped on its own before substitution so the composed
// text can be inserted into HTML as is.
package placeholder
