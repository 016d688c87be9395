// SPDX-License-Identifier: EPL-2.0

// Package cli holds the cobra commands of the modstems binary.
package cli
