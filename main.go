package main

import "github.com/frahmantamala/budget-allocation/cmd"

func main() {
	cmd.Execute()
}
