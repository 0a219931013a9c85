// Package counter submits the program's instructions against the data
// account and reads back the stored number.
package counter
