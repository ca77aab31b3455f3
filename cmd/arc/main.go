package main

import "arcane/cmd/arc/root"

func main() {
	root.Execute()
}
