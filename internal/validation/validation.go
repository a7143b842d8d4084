// Package validation contains the logic for validating
// configuration structs.
//
// It uses the `validator` library to enforce rules (required fields,
// allowed values, conditional requirements) defined in struct tags and
// turns validation failures into messages an operator can act on.
package validation
