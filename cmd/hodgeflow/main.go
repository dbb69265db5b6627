// SPDX-License-Identifier: MIT
// Command hodgeflow generates trajectory corpora, trains forward-pass
// families over them and evaluates trained checkpoints.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
