// Package connection checks that the configured cluster endpoint answers.
package connection
