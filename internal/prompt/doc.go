// Package prompt maps content categories to parametrized instruction
// templates and renders them with the user's topic. It is pure and
// stateless: the registry is built once and never mutated.
package prompt
