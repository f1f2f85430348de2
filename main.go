// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/pwa-builder/manifoldjs-cordova/cmd/manifoldjs-cordova"

func main() {
	cmd.Execute()
}
