package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E21xx: Structural errors
//   - E22xx: Unsupported patterns
//   - E23xx: Import resolution errors
type ErrorCode string

const (
	// Structural errors (E21xx)
	E2101 ErrorCode = "E2101" // Assignment cardinality mismatch
	E2102 ErrorCode = "E2102" // Compound assignment arity
	E2103 ErrorCode = "E2103" // Unsupported assignment shape
	E2104 ErrorCode = "E2104" // Insufficient operands

	// Unsupported patterns (E22xx)
	E2201 ErrorCode = "E2201" // Odd multiplier
	E2202 ErrorCode = "E2202" // Unmapped operator
	E2203 ErrorCode = "E2203" // Non-literal multiplier
	E2204 ErrorCode = "E2204" // Nested operand
	E2205 ErrorCode = "E2205" // Invalid operand
	E2206 ErrorCode = "E2206" // Instruction not in set
	E2207 ErrorCode = "E2207" // Multiplier out of range

	// Import resolution errors (E23xx)
	E2301 ErrorCode = "E2301" // Unresolved import
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E2101: "assignment cardinality mismatch",
	E2102: "compound assignment requires exactly one value",
	E2103: "unsupported assignment shape",
	E2104: "insufficient operands",

	E2201: "odd multiplier",
	E2202: "unmapped operator",
	E2203: "non-literal multiplier",
	E2204: "nested operand",
	E2205: "invalid operand",
	E2206: "instruction not in set",
	E2207: "multiplier out of range",

	E2301: "unresolved import",
}

// codeKinds maps error codes to the kind of failure they report.
var codeKinds = map[ErrorCode]Kind{
	E2101: Structural,
	E2102: Structural,
	E2103: Structural,
	E2104: Structural,
	E2201: UnsupportedPattern,
	E2202: UnsupportedPattern,
	E2203: UnsupportedPattern,
	E2204: UnsupportedPattern,
	E2205: UnsupportedPattern,
	E2206: UnsupportedPattern,
	E2207: UnsupportedPattern,
	E2301: ImportResolution,
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Kind returns the kind of failure the code reports.
func (c ErrorCode) Kind() Kind {
	if k, ok := codeKinds[c]; ok {
		return k
	}
	return Unknown
}
