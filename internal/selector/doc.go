// Package selector narrows discovered providers to those a user asked for.
package selector
