// Package grade computes the credit-weighted grade point average for the six
// curriculum subjects from raw internal-assessment, assignment and
// semester-end-exam marks.
//
// Every function in this package is pure: identical marks always produce an
// identical result and unparsable marks are treated as zero.
package grade
