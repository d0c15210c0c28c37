// main.go
package main

import "greenmart/cmd"

func main() {
	cmd.Execute()
}
